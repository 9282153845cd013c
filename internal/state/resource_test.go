package state

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/client"
	"github.com/target/admin-panel/internal/domain/model"
)

type fakeTemplateAPI struct {
	list   func(ctx context.Context, p client.ListParams) ([]model.Template, error)
	get    func(ctx context.Context, id string) (*model.Template, error)
	create func(ctx context.Context, req model.CreateTemplateRequest) (*model.Template, error)
	update func(ctx context.Context, id string, req model.UpdateTemplateRequest) (*model.Template, error)
	del    func(ctx context.Context, id string) error
}

func (f *fakeTemplateAPI) List(ctx context.Context, p client.ListParams) ([]model.Template, error) {
	return f.list(ctx, p)
}

func (f *fakeTemplateAPI) Get(ctx context.Context, id string) (*model.Template, error) {
	return f.get(ctx, id)
}

func (f *fakeTemplateAPI) Create(ctx context.Context, req model.CreateTemplateRequest) (*model.Template, error) {
	return f.create(ctx, req)
}

func (f *fakeTemplateAPI) Update(ctx context.Context, id string, req model.UpdateTemplateRequest) (*model.Template, error) {
	return f.update(ctx, id, req)
}

func (f *fakeTemplateAPI) Delete(ctx context.Context, id string) error {
	return f.del(ctx, id)
}

func seededAPI() *fakeTemplateAPI {
	return &fakeTemplateAPI{
		list: func(context.Context, client.ListParams) ([]model.Template, error) {
			return []model.Template{{ID: "t1", Title: "Home"}, {ID: "t2", Title: "About"}}, nil
		},
		get: func(_ context.Context, id string) (*model.Template, error) {
			return &model.Template{ID: id, Title: "Home"}, nil
		},
		create: func(_ context.Context, req model.CreateTemplateRequest) (*model.Template, error) {
			return &model.Template{ID: "t3", Title: req.Title}, nil
		},
		update: func(_ context.Context, id string, req model.UpdateTemplateRequest) (*model.Template, error) {
			return &model.Template{ID: id, Title: *req.Title}, nil
		},
		del: func(context.Context, string) error { return nil },
	}
}

func TestResource_CRUDTransitions(t *testing.T) {
	h := NewTemplates(seededAPI())
	ctx := context.Background()

	var seen []Snapshot[model.Template]
	unsubscribe := h.Subscribe(func(s Snapshot[model.Template]) { seen = append(seen, s) })

	items, err := h.FetchAll(ctx, client.ListParams{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)

	_, err = h.FetchOne(ctx, "t1")
	require.NoError(t, err)

	_, err = h.Create(ctx, model.CreateTemplateRequest{Title: "Team"})
	require.NoError(t, err)
	assert.Len(t, h.Snapshot().Items, 3)

	title := "Start"
	_, err = h.Update(ctx, "t1", model.UpdateTemplateRequest{Title: &title})
	require.NoError(t, err)
	snap := h.Snapshot()
	assert.Equal(t, "Start", snap.Items[0].Title)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Start", snap.Selected.Title, "selected record follows updates")

	require.NoError(t, h.Delete(ctx, "t2"))
	snap = h.Snapshot()
	assert.Equal(t, []string{"t1", "t3"}, ids(snap.Items))
	assert.False(t, snap.Loading)
	assert.Nil(t, snap.Error)

	h.ClearSelected()
	assert.Nil(t, h.Snapshot().Selected)

	unsubscribe()
	n := len(seen)
	h.ClearError()
	assert.Len(t, seen, n)
}

func TestResource_ErrorMessages(t *testing.T) {
	api := seededAPI()
	api.list = func(context.Context, client.ListParams) ([]model.Template, error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	api.create = func(context.Context, model.CreateTemplateRequest) (*model.Template, error) {
		return nil, &client.APIError{StatusCode: http.StatusConflict, Message: "Slug already exists"}
	}
	h := NewTemplates(api)
	ctx := context.Background()

	_, err := h.FetchAll(ctx, client.ListParams{})
	require.Error(t, err)
	require.NotNil(t, h.Snapshot().Error)
	assert.Equal(t, "Failed to fetch templates", *h.Snapshot().Error)

	_, err = h.Create(ctx, model.CreateTemplateRequest{Title: "Home"})
	require.Error(t, err)
	assert.Equal(t, "Slug already exists", *h.Snapshot().Error)
	assert.False(t, h.Snapshot().Loading)

	h.ClearError()
	assert.Nil(t, h.Snapshot().Error)
}

func TestResource_TakeLatest(t *testing.T) {
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex
	api := seededAPI()
	api.list = func(ctx context.Context, p client.ListParams) ([]model.Template, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(started)
			<-ctx.Done()
			return []model.Template{{ID: "stale"}}, ctx.Err()
		}
		return []model.Template{{ID: "fresh-" + p.Q}}, nil
	}
	h := NewTemplates(api)

	errCh := make(chan error, 1)
	go func() {
		_, err := h.FetchAll(context.Background(), client.ListParams{Q: "old"})
		errCh <- err
	}()
	<-started

	items, err := h.FetchAll(context.Background(), client.ListParams{Q: "new"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh-new"}, ids(items))

	require.ErrorIs(t, <-errCh, ErrSuperseded)
	snap := h.Snapshot()
	assert.Equal(t, []string{"fresh-new"}, ids(snap.Items))
	assert.Nil(t, snap.Error)
	assert.False(t, snap.Loading)
}

func TestResource_SnapshotIsCopy(t *testing.T) {
	h := NewTemplates(seededAPI())
	_, err := h.FetchAll(context.Background(), client.ListParams{})
	require.NoError(t, err)

	snap := h.Snapshot()
	snap.Items[0].Title = "mutated"
	assert.Equal(t, "Home", h.Snapshot().Items[0].Title)
}

func ids(items []model.Template) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
