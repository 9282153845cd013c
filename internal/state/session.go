package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/target/admin-panel/internal/client"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/forms"
	"github.com/target/admin-panel/internal/localstore"
)

// Session error messages.
const (
	MsgInvalidCredentials   = "Invalid credentials"
	MsgProfileUpdateFailed  = "Failed to update profile"
	MsgPasswordChangeFailed = "Failed to change password"
)

// AuthAPI is the remote auth surface.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, req model.ChangePasswordRequest) error
}

// KeyValueStore persists the token and user between runs.
type KeyValueStore interface {
	Get(key string, dst any) (bool, error)
	Set(key string, value any) error
	Remove(keys ...string) error
}

// SessionState is the signed-in user's view state.
type SessionState struct {
	User          *model.User
	Token         string
	Authenticated bool
	Initialized   bool
	Loading       bool
	Error         *string
}

// Session tracks authentication and keeps the local store in step.
type Session struct {
	api    AuthAPI
	store  KeyValueStore
	logger *slog.Logger

	mu    sync.Mutex
	state SessionState
	ops   *latest
	subs  subscribers[SessionState]
}

// NewSession constructs a Session holder.
func NewSession(api AuthAPI, store KeyValueStore, logger *slog.Logger) *Session {
	if api == nil || store == nil {
		panic("state: NewSession requires api and store")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{api: api, store: store, logger: logger, ops: newLatest()}
}

// Subscribe registers fn for state transitions.
func (s *Session) Subscribe(fn func(SessionState)) func() { return s.subs.add(fn) }

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Token returns the current bearer token. It satisfies client.TokenSource.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

func (s *Session) copyLocked() SessionState {
	st := s.state
	if s.state.User != nil {
		u := *s.state.User
		st.User = &u
	}
	if s.state.Error != nil {
		st.Error = ptr(*s.state.Error)
	}
	return st
}

func (s *Session) mutate(fn func(st *SessionState)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.copyLocked()
	s.mu.Unlock()
	s.subs.notify(snap)
}

// CheckAuth restores the session from the store. The user is authenticated
// only when both the token and the user are present.
func (s *Session) CheckAuth() error {
	var (
		token string
		user  model.User
	)
	hasToken, err := s.store.Get(localstore.KeyAuthToken, &token)
	if err != nil {
		s.mutate(func(st *SessionState) { st.Initialized = true })
		return err
	}
	hasUser, err := s.store.Get(localstore.KeyUser, &user)
	if err != nil {
		s.mutate(func(st *SessionState) { st.Initialized = true })
		return err
	}
	s.mutate(func(st *SessionState) {
		st.Initialized = true
		if hasToken && hasUser && token != "" {
			st.Token = token
			st.User = &user
			st.Authenticated = true
			return
		}
		st.Token = ""
		st.User = nil
		st.Authenticated = false
	})
	return nil
}

func (s *Session) begin(ctx context.Context, op string) (context.Context, uint64) {
	cctx, ticket := s.ops.start(ctx, op)
	s.mutate(func(st *SessionState) {
		st.Loading = true
		st.Error = nil
	})
	return cctx, ticket
}

func (s *Session) fail(op string, ticket uint64, msg string) bool {
	if !s.ops.finish(op, ticket) {
		return false
	}
	loading := s.ops.inFlight()
	s.mutate(func(st *SessionState) {
		st.Loading = loading
		st.Error = ptr(msg)
		if op == "login" {
			st.Authenticated = false
			st.User = nil
			st.Token = ""
		}
	})
	return true
}

// Login validates the form, authenticates and persists the session.
// A failed attempt signs out any previous session.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if errs := forms.Login(username, password); len(errs) > 0 {
		return errs
	}
	cctx, ticket := s.begin(ctx, "login")
	resp, err := s.api.Login(cctx, model.LoginRequest{Username: username, Password: password})
	if err != nil {
		msg := errorMessage(err, MsgInvalidCredentials)
		if client.StatusCode(err) == 0 && !errors.Is(err, context.Canceled) {
			msg = err.Error()
		}
		if !s.fail("login", ticket, msg) {
			return ErrSuperseded
		}
		if rmErr := s.store.Remove(localstore.KeyAuthToken, localstore.KeyUser); rmErr != nil {
			s.logger.WarnContext(ctx, "clear stored session failed", "error", rmErr)
		}
		return err
	}
	if !s.ops.finish("login", ticket) {
		return ErrSuperseded
	}
	if err := s.persist(resp.Token, resp.User); err != nil {
		s.mutate(func(st *SessionState) {
			st.Loading = false
			st.Error = ptr(err.Error())
		})
		return err
	}
	loading := s.ops.inFlight()
	s.mutate(func(st *SessionState) {
		st.Loading = loading
		st.Token = resp.Token
		st.User = resp.User
		st.Authenticated = true
		st.Initialized = true
	})
	return nil
}

func (s *Session) persist(token string, user *model.User) error {
	if err := s.store.Set(localstore.KeyAuthToken, token); err != nil {
		return err
	}
	return s.store.Set(localstore.KeyUser, user)
}

// Logout revokes the token on a best-effort basis, then clears local state.
func (s *Session) Logout(ctx context.Context) error {
	if s.Token() != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.WarnContext(ctx, "server logout failed", "error", err)
		}
	}
	err := s.store.Remove(localstore.KeyAuthToken, localstore.KeyUser)
	s.mutate(func(st *SessionState) {
		*st = SessionState{Initialized: true}
	})
	return err
}

// UpdateProfile patches the signed-in user and merges the result into the stored user.
func (s *Session) UpdateProfile(ctx context.Context, req model.UpdateProfileRequest) (*model.User, error) {
	cctx, ticket := s.begin(ctx, "profile")
	user, err := s.api.UpdateProfile(cctx, req)
	if err != nil {
		if !s.fail("profile", ticket, errorMessage(err, MsgProfileUpdateFailed)) {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	if !s.ops.finish("profile", ticket) {
		return nil, ErrSuperseded
	}
	if err := s.store.Set(localstore.KeyUser, user); err != nil {
		s.logger.WarnContext(ctx, "persist user failed", "error", err)
	}
	loading := s.ops.inFlight()
	s.mutate(func(st *SessionState) {
		st.Loading = loading
		st.User = user
	})
	return user, nil
}

// ChangePassword validates the form client-side, then asks the server to rotate the password.
func (s *Session) ChangePassword(ctx context.Context, form forms.ChangePassword) error {
	if errs := form.Validate(); len(errs) > 0 {
		return errs
	}
	cctx, ticket := s.begin(ctx, "password")
	err := s.api.ChangePassword(cctx, form.Request())
	if err != nil {
		if !s.fail("password", ticket, errorMessage(err, MsgPasswordChangeFailed)) {
			return ErrSuperseded
		}
		return err
	}
	if !s.ops.finish("password", ticket) {
		return ErrSuperseded
	}
	loading := s.ops.inFlight()
	s.mutate(func(st *SessionState) { st.Loading = loading })
	return nil
}

// ClearError drops the error message.
func (s *Session) ClearError() {
	s.mutate(func(st *SessionState) { st.Error = nil })
}

var (
	_ AuthAPI            = (*client.Client)(nil)
	_ KeyValueStore      = (*localstore.Store)(nil)
	_ client.TokenSource = (*Session)(nil)
)
