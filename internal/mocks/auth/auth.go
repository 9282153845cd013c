package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider   = (*MockAuthProvider)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.StateStore     = (*MemoryStateStore)(nil)
	_ ports.RoleMapper     = (*StaticRoleMapper)(nil)
	_ ports.PasswordHasher = (*PlainHasher)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: defaultIdentity(),
	}
}

func defaultIdentity() domainauth.Identity {
	return domainauth.Identity{
		UserID:    "mock-user-1",
		FirstName: "Mock",
		LastName:  "User",
		Email:     "mock.user@example.com",
		Groups:    []string{"editors"},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()

	state := fmt.Sprintf("%s-%d", orDefault(m.StatePrefix, "state"), n)
	nonce := fmt.Sprintf("%s-%d", orDefault(m.NoncePrefix, "nonce"), n)
	return orDefault(m.AuthURL, "https://mock-idp/auth"), state, nonce, nil
}

func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	user := m.DefaultUser
	if user.Email == "" {
		user = defaultIdentity()
	}
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionStore) Revoke(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, sess := range m.sessions {
		if userID == "" || sess.UserID == userID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MemoryStateStore is an in-memory ports.StateStore. TTLs are ignored.
type MemoryStateStore struct {
	mu     sync.Mutex
	nonces map[string]string
}

// NewMemoryStateStore creates an empty MemoryStateStore.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{nonces: make(map[string]string)}
}

func (m *MemoryStateStore) Put(_ context.Context, state, nonce string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nonces[state] = nonce
	return nil
}

func (m *MemoryStateStore) Take(_ context.Context, state string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nonce, ok := m.nonces[state]
	if !ok {
		return "", ports.ErrStateNotFound
	}
	delete(m.nonces, state)
	return nonce, nil
}

// StaticRoleMapper maps groups by simple string membership rules.
type StaticRoleMapper struct {
	AdminGroup  string
	EditorGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.EditorGroup != "" && g == m.EditorGroup {
			return domainauth.RoleEditor
		}
	}
	return domainauth.RoleViewer
}

// PlainHasher is a reversible PasswordHasher for fast unit tests.
type PlainHasher struct{}

const plainPrefix = "plain:"

func (PlainHasher) Hash(password string) (string, error) {
	return plainPrefix + password, nil
}

func (PlainHasher) Compare(hash, password string) error {
	if !strings.HasPrefix(hash, plainPrefix) || strings.TrimPrefix(hash, plainPrefix) != password {
		return errors.New("password mismatch")
	}
	return nil
}

// OpaqueTokenIssuer issues unsigned "tok.<session>.<user>.<role>" tokens.
// Tokens are only checked for shape, so tests can forge them freely.
type OpaqueTokenIssuer struct{}

var _ ports.TokenIssuer = OpaqueTokenIssuer{}

func (OpaqueTokenIssuer) Issue(sess domainauth.Session) (string, error) {
	if sess.ID == "" {
		return "", errors.New("session ID cannot be empty")
	}
	return strings.Join([]string{"tok", sess.ID, sess.UserID, string(sess.Role)}, "."), nil
}

func (OpaqueTokenIssuer) Verify(token string) (ports.TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 || parts[0] != "tok" {
		return ports.TokenClaims{}, errors.New("malformed token")
	}
	return ports.TokenClaims{SessionID: parts[1], UserID: parts[2], Role: domainauth.Role(parts[3])}, nil
}
