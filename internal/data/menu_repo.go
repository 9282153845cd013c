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

const menuTable = "menus"

func menuColumns() []string {
	return []string{"id", "title", "type", "status", "template_id", "created_at", "updated_at"}
}

var menuSelect = "SELECT " + strings.Join(menuColumns(), ", ") + " FROM menus"

// MenuRepo provides database operations for menus.
type MenuRepo struct {
	DB *sql.DB
}

// NewMenuRepo creates a new MenuRepo.
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{DB: db}
}

// Create inserts a new menu. TemplateID is stored as given and not checked.
func (r *MenuRepo) Create(ctx context.Context, req *model.CreateMenuRequest) (*model.Menu, error) {
	if req == nil {
		return nil, errors.New("create menu request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := queryOne[model.Menu](ctx, r.DB, `
		INSERT INTO menus (title, type, status, template_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+strings.Join(menuColumns(), ", "),
		req.Title, string(req.Type), string(req.Status), req.TemplateID,
	)
	if err != nil {
		return nil, mapWriteErr(err, ErrMenuNotFound, nil)
	}
	return out, nil
}

// GetByID retrieves a menu by ID.
func (r *MenuRepo) GetByID(ctx context.Context, id string) (*model.Menu, error) {
	if !validID(id) {
		return nil, ErrMenuNotFound
	}
	m, err := queryOne[model.Menu](ctx, r.DB, menuSelect+" WHERE id = $1", id)
	if err != nil {
		return nil, mapWriteErr(err, ErrMenuNotFound, nil)
	}
	return m, nil
}

// List retrieves menus with search, sorting and pagination.
func (r *MenuRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.Menu, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"title":      "title",
		"created_at": "created_at",
	})
	query, args := database.BuildListQuery(database.NewListQueryOptions(menuTable,
		database.WithColumns(menuColumns()...),
		database.WithCondition(database.WhereSearch(opts.Q, "title")),
		database.WithOrderBy(sortCol, sortDir),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))
	out, err := queryAll[model.Menu](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	return out, nil
}

// Update applies a partial update to a menu.
func (r *MenuRepo) Update(ctx context.Context, id string, req model.UpdateMenuRequest) (*model.Menu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrMenuNotFound
	}
	set := &setBuilder{}
	if req.Title != nil {
		set.add("title", *req.Title)
	}
	if req.Type != nil {
		set.add("type", string(*req.Type))
	}
	if req.Status != nil {
		set.add("status", string(*req.Status))
	}
	if req.TemplateID != nil {
		set.add("template_id", *req.TemplateID)
	}
	query, args := set.updateQuery(menuTable, id, menuColumns())
	out, err := queryOne[model.Menu](ctx, r.DB, query, args...)
	if err != nil {
		return nil, mapWriteErr(err, ErrMenuNotFound, nil)
	}
	return out, nil
}

// Delete deletes a menu by ID.
func (r *MenuRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.DB, menuTable, id)
}

// Count returns the total number of menus.
func (r *MenuRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, menuTable)
}
