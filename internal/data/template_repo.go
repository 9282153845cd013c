package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/target/admin-panel/internal/data/database"
	"github.com/target/admin-panel/internal/domain/model"
)

const templateTable = "templates"

var templateUniques = map[string]error{"slug": ErrSlugExists}

func templateColumns() []string {
	return []string{"id", "title", "slug", "type", "content", "banner", "created_at", "updated_at"}
}

// TemplateRepo provides database operations for templates.
type TemplateRepo struct {
	DB *sql.DB
}

// NewTemplateRepo creates a new TemplateRepo.
func NewTemplateRepo(db *sql.DB) *TemplateRepo {
	return &TemplateRepo{DB: db}
}

// Create inserts a new template.
func (r *TemplateRepo) Create(ctx context.Context, req *model.CreateTemplateRequest) (*model.Template, error) {
	if req == nil {
		return nil, errors.New("create template request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := queryOne[model.Template](ctx, r.DB, `
		INSERT INTO templates (title, slug, type, content, banner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+strings.Join(templateColumns(), ", "),
		req.Title, req.Slug, string(req.Type), req.Content, req.Banner,
	)
	if err != nil {
		return nil, mapWriteErr(err, ErrTemplateNotFound, templateUniques)
	}
	return out, nil
}

// GetByID retrieves a template by ID.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*model.Template, error) {
	if !validID(id) {
		return nil, ErrTemplateNotFound
	}
	return r.getBy(ctx, "id", id)
}

// GetBySlug retrieves a template by slug.
func (r *TemplateRepo) GetBySlug(ctx context.Context, slug string) (*model.Template, error) {
	return r.getBy(ctx, "slug", strings.TrimSpace(slug))
}

func (r *TemplateRepo) getBy(ctx context.Context, col, v string) (*model.Template, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions(templateTable,
		database.WithColumns(templateColumns()...),
		database.WithCondition(database.WhereCond(col, database.Equal, v)),
	))
	t, err := queryOne[model.Template](ctx, r.DB, query, args...)
	if err != nil {
		return nil, mapWriteErr(err, ErrTemplateNotFound, nil)
	}
	return t, nil
}

// List retrieves templates with search, sorting and pagination.
func (r *TemplateRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.Template, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"title":      "title",
		"slug":       "slug",
		"created_at": "created_at",
	})
	query, args := database.BuildListQuery(database.NewListQueryOptions(templateTable,
		database.WithColumns(templateColumns()...),
		database.WithCondition(database.WhereSearch(opts.Q, "title", "slug")),
		database.WithOrderBy(sortCol, sortDir),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))
	out, err := queryAll[model.Template](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return out, nil
}

// Update applies a partial update to a template.
func (r *TemplateRepo) Update(ctx context.Context, id string, req model.UpdateTemplateRequest) (*model.Template, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrTemplateNotFound
	}
	set := &setBuilder{}
	if req.Title != nil {
		set.add("title", *req.Title)
	}
	if req.Slug != nil {
		set.add("slug", *req.Slug)
	}
	if req.Type != nil {
		set.add("type", string(*req.Type))
	}
	if req.Content != nil {
		set.add("content", *req.Content)
	}
	if req.Banner != nil {
		set.add("banner", *req.Banner)
	}
	query, args := set.updateQuery(templateTable, id, templateColumns())
	out, err := queryOne[model.Template](ctx, r.DB, query, args...)
	if err != nil {
		return nil, mapWriteErr(err, ErrTemplateNotFound, templateUniques)
	}
	return out, nil
}

// Delete deletes a template by ID.
func (r *TemplateRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.DB, templateTable, id)
}

// Count returns the total number of templates.
func (r *TemplateRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, templateTable)
}
