package service

import (
	"context"

	"github.com/target/admin-panel/internal/domain/model"
)

// contentRepo is the CRUD surface shared by the template, menu and form repositories.
type contentRepo[T, C, U any] interface {
	Create(ctx context.Context, req *C) (*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, opts model.ListOptions) ([]*T, error)
	Update(ctx context.Context, id string, req U) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// contentService implements the pass-through CRUD operations; validation and
// defaults live on the request types and are applied by the repositories.
type contentService[T, C, U any] struct {
	repo contentRepo[T, C, U]
	// replace turns a full create-shaped body into an update setting every field.
	replace func(C) U
}

// List returns a page of records.
func (s contentService[T, C, U]) List(ctx context.Context, opts model.ListOptions) ([]*T, error) {
	return s.repo.List(ctx, opts)
}

// GetByID retrieves a record by ID.
func (s contentService[T, C, U]) GetByID(ctx context.Context, id string) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new record.
func (s contentService[T, C, U]) Create(ctx context.Context, req *C) (*T, error) {
	return s.repo.Create(ctx, req)
}

// Update applies a partial update.
func (s contentService[T, C, U]) Update(ctx context.Context, id string, req U) (*T, error) {
	return s.repo.Update(ctx, id, req)
}

// Replace overwrites every field of a record.
func (s contentService[T, C, U]) Replace(ctx context.Context, id string, req C) (*T, error) {
	return s.repo.Update(ctx, id, s.replace(req))
}

// Delete removes a record.
func (s contentService[T, C, U]) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
