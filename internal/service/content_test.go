package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/mocks"
	"go.uber.org/mock/gomock"
)

func TestTemplateService_PassThrough(t *testing.T) {
	repo := mocks.NewMockTemplateRepository(gomock.NewController(t))
	svc := NewTemplateService(TemplateServiceOptions{Repo: repo})
	ctx := context.Background()
	opts := model.ListOptions{Q: "about", Limit: 10}

	repo.EXPECT().List(ctx, opts).Return([]*model.Template{{ID: "t1"}}, nil)
	repo.EXPECT().GetBySlug(ctx, "about-us").Return(&model.Template{ID: "t1", Slug: "about-us"}, nil)
	repo.EXPECT().Delete(ctx, "t1").Return(true, nil)

	list, err := svc.List(ctx, opts)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	tpl, err := svc.GetBySlug(ctx, "about-us")
	require.NoError(t, err)
	assert.Equal(t, "t1", tpl.ID)

	ok, err := svc.Delete(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTemplateService_Replace(t *testing.T) {
	repo := mocks.NewMockTemplateRepository(gomock.NewController(t))
	svc := NewTemplateService(TemplateServiceOptions{Repo: repo})
	ctx := context.Background()

	repo.EXPECT().Update(ctx, "t1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, u model.UpdateTemplateRequest) (*model.Template, error) {
			assert.Equal(t, "about-us", *u.Slug)
			assert.Equal(t, model.TemplateTypeStatic, *u.Type)
			require.NotNil(t, u.Content)
			assert.Empty(t, *u.Content)
			assert.Empty(t, *u.Banner)
			return &model.Template{ID: "t1"}, nil
		})

	_, err := svc.Replace(ctx, "t1", model.CreateTemplateRequest{Title: "About Us"})
	require.NoError(t, err)
}

func TestMenuService_ReplaceDefaults(t *testing.T) {
	u := replaceMenu(model.CreateMenuRequest{Title: "Main", TemplateID: "missing"})
	assert.Equal(t, model.MenuTypeList, *u.Type)
	assert.Equal(t, model.MenuStatusActive, *u.Status)
	assert.Equal(t, "missing", *u.TemplateID)
}

func TestMenuService_CreatePropagatesErrors(t *testing.T) {
	repo := mocks.NewMockMenuRepository(gomock.NewController(t))
	svc := NewMenuService(MenuServiceOptions{Repo: repo})
	ctx := context.Background()
	boom := errors.New("boom")
	req := &model.CreateMenuRequest{Title: "Main"}

	repo.EXPECT().Create(ctx, req).Return(nil, boom)

	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, boom)
}

func TestFormService_ReplaceDefaults(t *testing.T) {
	u := replaceForm(model.CreateFormRequest{Name: "Jane"})
	assert.Equal(t, model.FormStatusNew, *u.Status)
	require.NotNil(t, u.Fields)
	assert.Empty(t, *u.Fields)
}

func TestFormService_UpdateAndGet(t *testing.T) {
	repo := mocks.NewMockFormRepository(gomock.NewController(t))
	svc := NewFormService(FormServiceOptions{Repo: repo})
	ctx := context.Background()
	read := model.FormStatusRead
	upd := model.UpdateFormRequest{Status: &read}

	repo.EXPECT().Update(ctx, "f1", upd).Return(&model.FormSubmission{ID: "f1", Status: read}, nil)
	repo.EXPECT().GetByID(ctx, "f1").Return(&model.FormSubmission{ID: "f1", Status: read}, nil)

	got, err := svc.Update(ctx, "f1", upd)
	require.NoError(t, err)
	assert.Equal(t, read, got.Status)

	got, err = svc.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.ID)
}

func TestContentServices_PanicWithoutRepo(t *testing.T) {
	assert.Panics(t, func() { NewTemplateService(TemplateServiceOptions{}) })
	assert.Panics(t, func() { NewMenuService(MenuServiceOptions{}) })
	assert.Panics(t, func() { NewFormService(FormServiceOptions{}) })
	assert.Panics(t, func() { NewSettingsService(SettingsServiceOptions{}) })
}
