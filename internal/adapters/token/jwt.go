package token

// Package token issues and verifies HS256 bearer tokens bound to server-side sessions.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/ports"
)

// DefaultIssuer is the iss claim written into every token.
const DefaultIssuer = "admin-panel"

const minSecretLen = 32

// ErrInvalidToken is returned for tokens that fail parsing, signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer. The jti claim carries the session ID
// so revoking the session revokes the token.
type JWTIssuer struct {
	secret []byte
	issuer string
	clock  clockwork.Clock
}

// Option configures a JWTIssuer.
type Option func(*JWTIssuer)

// WithClock overrides the clock used for iat and expiry checks.
func WithClock(c clockwork.Clock) Option {
	return func(j *JWTIssuer) { j.clock = c }
}

// WithIssuer overrides DefaultIssuer.
func WithIssuer(iss string) Option {
	return func(j *JWTIssuer) { j.issuer = iss }
}

// NewJWTIssuer returns an issuer signing with secret, which must be at least 32 bytes.
func NewJWTIssuer(secret string, opts ...Option) (*JWTIssuer, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", minSecretLen)
	}
	j := &JWTIssuer{secret: []byte(secret), issuer: DefaultIssuer, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

func (j *JWTIssuer) Issue(sess domainauth.Session) (string, error) {
	if sess.ID == "" || sess.UserID == "" {
		return "", errors.New("session ID and user ID are required")
	}
	issuedAt := sess.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = j.clock.Now()
	}
	c := claims{
		Role: string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTIssuer) Verify(raw string) (ports.TokenClaims, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.clock.Now),
	)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, ok := domainauth.ParseRole(c.Role)
	if !ok || c.ID == "" || c.Subject == "" {
		return ports.TokenClaims{}, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}
	return ports.TokenClaims{
		SessionID: c.ID,
		UserID:    c.Subject,
		Role:      role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
