package core

import (
	"context"

	"github.com/target/admin-panel/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// Service implementations depend on these interfaces, not on the data package.

// CreateUserParams groups the validated request with the already hashed password.
type CreateUserParams struct {
	Req          *model.CreateUserRequest
	PasswordHash string
}

// UpdateUserParams groups a validated patch with an optional new password hash.
// Req.Password is ignored by repositories; only PasswordHash is persisted.
type UpdateUserParams struct {
	Req          model.UpdateUserRequest
	PasswordHash *string
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.User, error)
	Update(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// TemplateRepository defines the interface for template data operations.
type TemplateRepository interface {
	Create(ctx context.Context, req *model.CreateTemplateRequest) (*model.Template, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	GetBySlug(ctx context.Context, slug string) (*model.Template, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.Template, error)
	Update(ctx context.Context, id string, req model.UpdateTemplateRequest) (*model.Template, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// MenuRepository defines the interface for menu data operations.
type MenuRepository interface {
	Create(ctx context.Context, req *model.CreateMenuRequest) (*model.Menu, error)
	GetByID(ctx context.Context, id string) (*model.Menu, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.Menu, error)
	Update(ctx context.Context, id string, req model.UpdateMenuRequest) (*model.Menu, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// FormRepository defines the interface for form submission data operations.
type FormRepository interface {
	Create(ctx context.Context, req *model.CreateFormRequest) (*model.FormSubmission, error)
	GetByID(ctx context.Context, id string) (*model.FormSubmission, error)
	List(ctx context.Context, opts model.ListOptions) ([]*model.FormSubmission, error)
	Update(ctx context.Context, id string, req model.UpdateFormRequest) (*model.FormSubmission, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SettingsRepository defines the interface for the settings singleton.
type SettingsRepository interface {
	// Get returns the stored settings, or defaults when nothing has been saved.
	Get(ctx context.Context) (*model.Settings, error)
	// Put replaces the stored settings.
	Put(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error)
}
