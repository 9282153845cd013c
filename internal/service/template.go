package service

import (
	"context"

	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/domain/model"
)

// TemplateServiceOptions groups dependencies for TemplateService.
type TemplateServiceOptions struct {
	Repo core.TemplateRepository
}

// TemplateService manages content page templates.
type TemplateService struct {
	contentService[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]
	repo core.TemplateRepository
}

// NewTemplateService constructs a new TemplateService.
func NewTemplateService(opts TemplateServiceOptions) *TemplateService {
	if opts.Repo == nil {
		panic("service: TemplateService requires Repo")
	}
	return &TemplateService{
		contentService: contentService[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]{
			repo:    opts.Repo,
			replace: replaceTemplate,
		},
		repo: opts.Repo,
	}
}

// GetBySlug retrieves a template by its slug.
func (s *TemplateService) GetBySlug(ctx context.Context, slug string) (*model.Template, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// replaceTemplate sets every field; absent content and banner are cleared.
// A missing slug is derived from the title, as on create.
func replaceTemplate(req model.CreateTemplateRequest) model.UpdateTemplateRequest {
	slug := req.Slug
	if slug == "" {
		slug = model.Slugify(req.Title)
	}
	typ := req.Type
	if typ == "" {
		typ = model.TemplateTypeStatic
	}
	return model.UpdateTemplateRequest{
		Title:   &req.Title,
		Slug:    &slug,
		Type:    &typ,
		Content: orEmpty(req.Content),
		Banner:  orEmpty(req.Banner),
	}
}

func orEmpty(p *string) *string {
	if p == nil {
		return new(string)
	}
	return p
}
