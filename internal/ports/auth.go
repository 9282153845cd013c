package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// ErrStateNotFound is returned by StateStore.Take for unknown or already consumed states.
var ErrStateNotFound = errors.New("sso state not found")

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// AuthProvider initiates and completes a single sign-on flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
	// Revoke deletes every session of userID and reports how many were removed.
	// An empty userID revokes all sessions.
	Revoke(ctx context.Context, userID string) (int, error)
}

// StateStore remembers the nonce issued with each pending SSO state.
// Take is single use: a second call for the same state returns ErrStateNotFound.
type StateStore interface {
	Put(ctx context.Context, state, nonce string, ttl time.Duration) error
	Take(ctx context.Context, state string) (string, error)
}

// RoleMapper maps provider groups to application roles.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}

// TokenClaims is what a verified access token asserts.
type TokenClaims struct {
	SessionID string
	UserID    string
	Role      domainauth.Role
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer access tokens bound to a session.
type TokenIssuer interface {
	Issue(sess domainauth.Session) (string, error)
	Verify(token string) (TokenClaims, error)
}

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}
