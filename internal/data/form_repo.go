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

const formTable = "forms"

func formColumns() []string {
	return []string{"id", "name", "email", "message", "status", "fields", "created_at", "updated_at"}
}

var formSelect = "SELECT " + strings.Join(formColumns(), ", ") + " FROM forms"

// FormRepo provides database operations for form submissions.
// Fields are stored as a JSONB array.
type FormRepo struct {
	DB *sql.DB
}

// NewFormRepo creates a new FormRepo.
func NewFormRepo(db *sql.DB) *FormRepo {
	return &FormRepo{DB: db}
}

// Create inserts a new form submission.
func (r *FormRepo) Create(ctx context.Context, req *model.CreateFormRequest) (*model.FormSubmission, error) {
	if req == nil {
		return nil, errors.New("create form request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := queryOne[model.FormSubmission](ctx, r.DB, `
		INSERT INTO forms (name, email, message, status, fields)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+strings.Join(formColumns(), ", "),
		req.Name, req.Email, req.Message, string(req.Status), req.Fields,
	)
	if err != nil {
		return nil, mapWriteErr(err, ErrFormNotFound, nil)
	}
	return out, nil
}

// GetByID retrieves a form submission by ID.
func (r *FormRepo) GetByID(ctx context.Context, id string) (*model.FormSubmission, error) {
	if !validID(id) {
		return nil, ErrFormNotFound
	}
	f, err := queryOne[model.FormSubmission](ctx, r.DB, formSelect+" WHERE id = $1", id)
	if err != nil {
		return nil, mapWriteErr(err, ErrFormNotFound, nil)
	}
	return f, nil
}

// List retrieves form submissions with search, sorting and pagination.
func (r *FormRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.FormSubmission, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"name":       "name",
		"status":     "status",
		"created_at": "created_at",
	})
	query, args := database.BuildListQuery(database.NewListQueryOptions(formTable,
		database.WithColumns(formColumns()...),
		database.WithCondition(database.WhereSearch(opts.Q, "name", "email", "message")),
		database.WithOrderBy(sortCol, sortDir),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))
	out, err := queryAll[model.FormSubmission](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return out, nil
}

// Update applies a partial update to a form submission.
func (r *FormRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateFormRequest,
) (*model.FormSubmission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ErrFormNotFound
	}
	set := &setBuilder{}
	if req.Name != nil {
		set.add("name", *req.Name)
	}
	if req.Email != nil {
		set.add("email", *req.Email)
	}
	if req.Message != nil {
		set.add("message", *req.Message)
	}
	if req.Status != nil {
		set.add("status", string(*req.Status))
	}
	if req.Fields != nil {
		fields := *req.Fields
		if fields == nil {
			fields = []model.FormField{}
		}
		set.add("fields", fields)
	}
	query, args := set.updateQuery(formTable, id, formColumns())
	out, err := queryOne[model.FormSubmission](ctx, r.DB, query, args...)
	if err != nil {
		return nil, mapWriteErr(err, ErrFormNotFound, nil)
	}
	return out, nil
}

// Delete deletes a form submission by ID.
func (r *FormRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.DB, formTable, id)
}

// Count returns the total number of form submissions.
func (r *FormRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, formTable)
}
