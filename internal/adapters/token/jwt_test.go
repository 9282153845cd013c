package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newSession(now time.Time) domainauth.Session {
	return domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Username:  "admin",
		Role:      domainauth.RoleAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	iss, err := NewJWTIssuer(testSecret, WithClock(clock))
	require.NoError(t, err)

	raw, err := iss.Issue(newSession(clock.Now()))
	require.NoError(t, err)

	got, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.SessionID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, domainauth.RoleAdmin, got.Role)
	assert.True(t, got.ExpiresAt.Equal(clock.Now().Add(time.Hour)))
}

func TestJWTIssuer_Expired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	iss, err := NewJWTIssuer(testSecret, WithClock(clock))
	require.NoError(t, err)

	raw, err := iss.Issue(newSession(clock.Now()))
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = iss.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTIssuer_WrongSecretOrIssuer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a, err := NewJWTIssuer(testSecret, WithClock(clock))
	require.NoError(t, err)
	b, err := NewJWTIssuer(testSecret+"x", WithClock(clock))
	require.NoError(t, err)
	c, err := NewJWTIssuer(testSecret, WithClock(clock), WithIssuer("someone-else"))
	require.NoError(t, err)

	raw, err := a.Issue(newSession(clock.Now()))
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = c.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	iss, err := NewJWTIssuer(testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"jti": "s", "sub": "u", "role": "admin", "iss": DefaultIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTIssuer_Validation(t *testing.T) {
	_, err := NewJWTIssuer("short")
	require.Error(t, err)

	iss, err := NewJWTIssuer(testSecret)
	require.NoError(t, err)
	_, err = iss.Issue(domainauth.Session{UserID: "u"})
	require.Error(t, err)

	_, err = iss.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
