package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword authenticates users against stored bcrypt hashes.
	AuthModePassword AuthMode = "password"
	// AuthModeOIDC adds single sign-on through an OIDC provider.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock adds single sign-on against a fixed dev identity (for development only).
	AuthModeMock AuthMode = "mock"
)

// MinJWTSecretLen is the shortest signing secret accepted outside dev mode.
const MinJWTSecretLen = 32

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "password", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, oidc, mock)", v)
	}
}

// SSO reports whether the mode offers single sign-on.
func (a AuthMode) SSO() bool { return a == AuthModeOIDC || a == AuthModeMock }

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"adminpanel"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/sso/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID    string   `env:"USER_ID"    envDefault:"dev-user"`
	Email     string   `env:"EMAIL"      envDefault:"dev@example.com"`
	FirstName string   `env:"FIRST_NAME" envDefault:"Dev"`
	LastName  string   `env:"LAST_NAME"  envDefault:"User"`
	Groups    []string `env:"GROUPS"     envDefault:"admins"          envSeparator:";"`
}

// LoginRateLimitConfig throttles POST /auth/login per client IP.
type LoginRateLimitConfig struct {
	PerSecond float64 `env:"PER_SECOND" envDefault:"1"`
	Burst     int     `env:"BURST"      envDefault:"5"`
}

// AuthConfig groups all authentication-related configuration.
// Every variable is read with the AUTH_ prefix.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"MODE" envDefault:"password"`

	// JWTSecret signs access tokens (HS256).
	JWTSecret string `env:"JWT_SECRET"`
	// JWTIssuer is the iss claim of issued tokens.
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"adminpanel"`

	// SessionTTL bounds both the Redis session and the access token.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	// StateTTL bounds a pending SSO login.
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"10m"`

	LoginRateLimit LoginRateLimitConfig `envPrefix:"LOGIN_RATE_"`

	// OAuth configuration (used when Mode=oidc).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_"`

	// AdminGroups and EditorGroups map IdP groups to roles; anyone else is a viewer.
	// Both are semicolon separated.
	AdminGroups  string `env:"ADMIN_GROUPS"  envDefault:"admins"`
	EditorGroups string `env:"EDITOR_GROUPS" envDefault:"editors"`
}

// Sanitize trims values and restores defaults for out-of-range durations.
func (a *AuthConfig) Sanitize() {
	a.JWTSecret = strings.TrimSpace(a.JWTSecret)
	a.OAuth.DiscoveryURL = strings.TrimSpace(a.OAuth.DiscoveryURL)
	if a.Mode == "" {
		a.Mode = AuthModePassword
	}
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
	if a.StateTTL <= 0 {
		a.StateTTL = 10 * time.Minute
	}
	if a.LoginRateLimit.Burst < 1 {
		a.LoginRateLimit.Burst = 1
	}
}

// Validate checks settings the server cannot run without. Dev mode allows a
// short or missing JWT secret and refuses nothing else.
func (a *AuthConfig) Validate(isDev bool) error {
	var errs []error
	if !isDev && len(a.JWTSecret) < MinJWTSecretLen {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d characters", MinJWTSecretLen))
	}
	if a.Mode == AuthModeMock && !isDev {
		errs = append(errs, errors.New("AUTH_MODE=mock requires DEV=true"))
	}
	if a.Mode == AuthModeOIDC {
		if a.OAuth.DiscoveryURL == "" {
			errs = append(errs, errors.New("AUTH_OAUTH_DISCOVERY_URL is required when AUTH_MODE=oidc"))
		}
		if a.OAuth.ClientSecret == "" {
			errs = append(errs, errors.New("AUTH_OAUTH_CLIENT_SECRET is required when AUTH_MODE=oidc"))
		}
	}
	return errors.Join(errs...)
}
