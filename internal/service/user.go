package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/admin-panel/internal/core"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/ports"
)

const defaultUserRole = domainauth.RoleEditor

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo   core.UserRepository
	Hasher ports.PasswordHasher
	// Sessions, when set, is used to sign a user out everywhere after their
	// account is deleted or their role, status or password changes.
	Sessions ports.SessionStore
	Logger   *slog.Logger // Optional
}

// UserService manages accounts. Passwords are hashed here and never leave the service in clear.
type UserService struct {
	repo     core.UserRepository
	hasher   ports.PasswordHasher
	sessions ports.SessionStore
	logger   *slog.Logger
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	if opts.Repo == nil || opts.Hasher == nil {
		panic("service: UserService requires Repo and Hasher")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:     opts.Repo,
		hasher:   opts.Hasher,
		sessions: opts.Sessions,
		logger:   logger.With("component", "users"),
	}
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, opts model.ListOptions) ([]*model.User, error) {
	return s.repo.List(ctx, opts)
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request, hashes the password and stores the user.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.Create(ctx, core.CreateUserParams{Req: req, PasswordHash: hash})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Update applies a partial update. An empty password leaves the current one in place.
// A new password, role or status ends the user's existing sessions.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var before *model.User
	if s.sessions != nil && (req.Role != nil || req.Status != nil) {
		cur, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		before = cur
	}
	params := core.UpdateUserParams{Req: req}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		params.PasswordHash = &hash
	}
	user, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	switch {
	case req.Password != nil:
		s.revokeSessions(ctx, id, "password changed")
	case before != nil && (before.Role != user.Role || before.Status != user.Status):
		s.revokeSessions(ctx, id, "access changed")
	}
	return user, nil
}

// Replace overwrites every field of a user. The password is optional and kept when empty.
func (s *UserService) Replace(ctx context.Context, id string, req model.CreateUserRequest) (*model.User, error) {
	upd := model.UpdateUserRequest{
		Username: &req.Username,
		Email:    &req.Email,
		Name:     &req.Name,
		Avatar:   &req.Avatar,
	}
	if req.Password != "" {
		upd.Password = &req.Password
	}
	role := req.Role
	if role == "" {
		role = defaultUserRole
	}
	upd.Role = &role
	status := req.Status
	if status == "" {
		status = model.UserStatusActive
	}
	upd.Status = &status
	return s.Update(ctx, id, upd)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err == nil && ok {
		s.logger.InfoContext(ctx, "user deleted", "user_id", id)
		s.revokeSessions(ctx, id, "user deleted")
	}
	return ok, err
}

// revokeSessions signs id out everywhere. The account change has already been
// committed, so a store failure is logged rather than returned.
func (s *UserService) revokeSessions(ctx context.Context, id, reason string) {
	if s.sessions == nil || id == "" {
		return
	}
	n, err := s.sessions.Revoke(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke sessions", "user_id", id, "reason", reason, "error", err)
		return
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "sessions revoked", "user_id", id, "reason", reason, "count", n)
	}
}
