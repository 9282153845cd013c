package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/ports"
)

func TestMockAuthProvider_Begin_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	_, state2, nonce2, err := provider.Begin(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockAuthProvider_Exchange_Default(t *testing.T) {
	provider := &MockAuthProvider{}
	id, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "c"})
	require.NoError(t, err)
	assert.Equal(t, "mock.user@example.com", id.Email)
	assert.False(t, id.ExpiresAt.IsZero())
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.Error(t, store.Save(ctx, domainauth.Session{}))
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "s1", UserID: "u1"}))

	sess, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestMemoryStateStore_TakeIsSingleUse(t *testing.T) {
	store := NewMemoryStateStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "st", "n", 0))
	nonce, err := store.Take(ctx, "st")
	require.NoError(t, err)
	assert.Equal(t, "n", nonce)

	_, err = store.Take(ctx, "st")
	assert.ErrorIs(t, err, ports.ErrStateNotFound)
}

func TestStaticRoleMapper(t *testing.T) {
	m := StaticRoleMapper{AdminGroup: "admins", EditorGroup: "editors"}
	assert.Equal(t, domainauth.RoleAdmin, m.Map([]string{"editors", "admins"}))
	assert.Equal(t, domainauth.RoleEditor, m.Map([]string{"editors"}))
	assert.Equal(t, domainauth.RoleViewer, m.Map(nil))
}

func TestPlainHasher(t *testing.T) {
	h := PlainHasher{}
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	require.NoError(t, h.Compare(hash, "pw"))
	assert.Error(t, h.Compare(hash, "other"))
}

func TestOpaqueTokenIssuer(t *testing.T) {
	iss := OpaqueTokenIssuer{}
	tok, err := iss.Issue(domainauth.Session{ID: "s1", UserID: "u1", Role: domainauth.RoleEditor})
	require.NoError(t, err)

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domainauth.RoleEditor, claims.Role)

	_, err = iss.Verify("garbage")
	assert.Error(t, err)
}
