// Package devseed populates a development database with an admin account and
// sample content. Every step is idempotent.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/target/admin-panel/config"
	"github.com/target/admin-panel/internal/adapters/passwords"
	"github.com/target/admin-panel/internal/data"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	apperrors "github.com/target/admin-panel/internal/errors"
	"github.com/target/admin-panel/internal/service"
)

// UserCreator creates accounts, hashing the password.
type UserCreator interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
}

// TemplateStore creates and finds templates.
type TemplateStore interface {
	Create(ctx context.Context, req *model.CreateTemplateRequest) (*model.Template, error)
	GetBySlug(ctx context.Context, slug string) (*model.Template, error)
}

// MenuStore creates and counts menus.
type MenuStore interface {
	Create(ctx context.Context, req *model.CreateMenuRequest) (*model.Menu, error)
	Count(ctx context.Context) (int, error)
}

// FormStore creates and counts form submissions.
type FormStore interface {
	Create(ctx context.Context, req *model.CreateFormRequest) (*model.FormSubmission, error)
	Count(ctx context.Context) (int, error)
}

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users     UserCreator
	Templates TemplateStore
	Menus     MenuStore
	Forms     FormStore
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		Users: service.NewUserService(service.UserServiceOptions{
			Repo:   data.NewUserRepo(db),
			Hasher: passwords.BcryptHasher{},
		}),
		Templates: service.NewTemplateService(service.TemplateServiceOptions{Repo: data.NewTemplateRepo(db)}),
		Menus:     data.NewMenuRepo(db),
		Forms:     data.NewFormRepo(db),
	}
}

// Run seeds the admin account and, when cfg.Samples is set, the sample data.
// Records that already exist are left alone.
func Run(ctx context.Context, svcs Services, cfg config.SeedConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	s := seeder{svcs: svcs, logger: logger}

	s.user(ctx, model.CreateUserRequest{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     "Administrator",
		Role:     domainauth.RoleAdmin,
	})
	if cfg.Samples {
		for _, req := range sampleUsers() {
			s.user(ctx, req)
		}
		templateIDs := s.templates(ctx)
		s.menus(ctx, templateIDs)
		s.forms(ctx)
	}

	if s.failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", s.failures)
	}
	return nil
}

type seeder struct {
	svcs     Services
	logger   *slog.Logger
	failures int
}

func (s *seeder) fail(ctx context.Context, msg string, err error, args ...any) {
	s.failures++
	s.logger.ErrorContext(ctx, msg, append(args, "error", err)...)
}

func (s *seeder) user(ctx context.Context, req model.CreateUserRequest) {
	_, err := s.svcs.Users.Create(ctx, &req)
	switch {
	case apperrors.IsConflict(err):
		s.logger.InfoContext(ctx, "user already exists", "username", req.Username)
	case err != nil:
		s.fail(ctx, "failed to create user", err, "username", req.Username)
	default:
		s.logger.InfoContext(ctx, "created user", "username", req.Username, "role", req.Role)
	}
}

// templates returns the IDs of the sample templates keyed by slug.
func (s *seeder) templates(ctx context.Context) map[string]string {
	ids := map[string]string{}
	for _, req := range sampleTemplates() {
		existing, err := s.svcs.Templates.GetBySlug(ctx, req.Slug)
		if err == nil {
			ids[req.Slug] = existing.ID
			s.logger.InfoContext(ctx, "template already exists", "slug", req.Slug)
			continue
		}
		if !apperrors.IsNotFound(err) {
			s.fail(ctx, "failed to look up template", err, "slug", req.Slug)
			continue
		}
		created, err := s.svcs.Templates.Create(ctx, &req)
		if err != nil {
			s.fail(ctx, "failed to create template", err, "slug", req.Slug)
			continue
		}
		ids[req.Slug] = created.ID
		s.logger.InfoContext(ctx, "created template", "slug", req.Slug)
	}
	return ids
}

// menus seeds only into an empty table; menus have no natural key.
func (s *seeder) menus(ctx context.Context, templateIDs map[string]string) {
	if s.nonEmpty(ctx, "menus", s.svcs.Menus) {
		return
	}
	for _, req := range sampleMenus(templateIDs) {
		if _, err := s.svcs.Menus.Create(ctx, &req); err != nil {
			s.fail(ctx, "failed to create menu", err, "title", req.Title)
			continue
		}
		s.logger.InfoContext(ctx, "created menu", "title", req.Title)
	}
}

func (s *seeder) forms(ctx context.Context) {
	if s.nonEmpty(ctx, "form submissions", s.svcs.Forms) {
		return
	}
	for _, req := range sampleForms() {
		if _, err := s.svcs.Forms.Create(ctx, &req); err != nil {
			s.fail(ctx, "failed to create form submission", err, "name", req.Name)
			continue
		}
		s.logger.InfoContext(ctx, "created form submission", "name", req.Name)
	}
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

func (s *seeder) nonEmpty(ctx context.Context, what string, c counter) bool {
	n, err := c.Count(ctx)
	if err != nil {
		s.fail(ctx, "failed to count "+what, err)
		return true
	}
	if n > 0 {
		s.logger.InfoContext(ctx, what+" already present; skipping", "count", n)
		return true
	}
	return false
}
