package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/data/database"
	"github.com/target/admin-panel/internal/domain/model"
)

const userTable = "users"

var userUniques = map[string]error{"username": ErrUsernameExists, "email": ErrEmailExists}

// userColumns returns the standard column list for user queries.
func userColumns() []string {
	return []string{
		"id", "username", "email", "name", "role", "avatar", "status",
		"password_hash", "created_at", "updated_at",
	}
}

var userSelect = "SELECT " + strings.Join(userColumns(), ", ") + " FROM users"

// UserRepo provides database operations for users.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create inserts a new user. The request must already be validated.
func (r *UserRepo) Create(ctx context.Context, params core.CreateUserParams) (*model.User, error) {
	req := params.Req
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	out, err := queryOne[model.User](ctx, r.DB, `
		INSERT INTO users (username, email, name, role, avatar, status, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+strings.Join(userColumns(), ", "),
		req.Username, req.Email, req.Name, string(req.Role), req.Avatar, string(req.Status), params.PasswordHash,
	)
	if err != nil {
		return nil, mapWriteErr(err, ErrUserNotFound, userUniques)
	}
	return out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, ErrUserNotFound
	}
	return r.getBy(ctx, userSelect+" WHERE id = $1", id)
}

// GetByUsername retrieves a user by username, ignoring case.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getBy(ctx, userSelect+" WHERE lower(username) = lower($1)", strings.TrimSpace(username))
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, userSelect+" WHERE lower(email) = lower($1)", strings.TrimSpace(email))
}

func (r *UserRepo) getBy(ctx context.Context, q string, arg string) (*model.User, error) {
	u, err := queryOne[model.User](ctx, r.DB, q, arg)
	if err != nil {
		return nil, mapWriteErr(err, ErrUserNotFound, nil)
	}
	return u, nil
}

// List retrieves users with search, sorting and pagination.
func (r *UserRepo) List(ctx context.Context, opts model.ListOptions) ([]*model.User, error) {
	limit, offset := pageBounds(opts.Limit, opts.Offset)
	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"username":   "username",
		"name":       "name",
		"email":      "email",
		"created_at": "created_at",
	})
	query, args := database.BuildListQuery(database.NewListQueryOptions(userTable,
		database.WithColumns(userColumns()...),
		database.WithCondition(database.WhereSearch(opts.Q, "username", "email", "name")),
		database.WithOrderBy(sortCol, sortDir),
		database.WithLimit(limit),
		database.WithOffset(offset),
	))
	users, err := queryAll[model.User](ctx, r.DB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update applies a partial update. A request with no changes returns the current row.
func (r *UserRepo) Update(ctx context.Context, id string, params core.UpdateUserParams) (*model.User, error) {
	if !validID(id) {
		return nil, ErrUserNotFound
	}
	set := r.buildUpdateClause(params)
	if set.empty() {
		return r.GetByID(ctx, id)
	}
	query, args := set.updateQuery(userTable, id, userColumns())
	out, err := queryOne[model.User](ctx, r.DB, query, args...)
	if err != nil {
		return nil, mapWriteErr(err, ErrUserNotFound, userUniques)
	}
	return out, nil
}

func (r *UserRepo) buildUpdateClause(params core.UpdateUserParams) *setBuilder {
	req := params.Req
	set := &setBuilder{}
	if req.Username != nil {
		set.add("username", *req.Username)
	}
	if req.Email != nil {
		set.add("email", *req.Email)
	}
	if req.Name != nil {
		set.add("name", *req.Name)
	}
	if req.Role != nil {
		set.add("role", string(*req.Role))
	}
	if req.Avatar != nil {
		set.add("avatar", *req.Avatar)
	}
	if req.Status != nil {
		set.add("status", string(*req.Status))
	}
	if params.PasswordHash != nil {
		set.add("password_hash", *params.PasswordHash)
	}
	return set
}

// Delete deletes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.DB, userTable, id)
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.DB, userTable)
}
