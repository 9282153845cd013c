package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/target/admin-panel/config"
	"github.com/target/admin-panel/internal/adapters/authroles"
	"github.com/target/admin-panel/internal/adapters/devauth"
	"github.com/target/admin-panel/internal/adapters/oidc"
	"github.com/target/admin-panel/internal/adapters/passwords"
	redisadapter "github.com/target/admin-panel/internal/adapters/redis"
	"github.com/target/admin-panel/internal/adapters/token"
	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/ports"
	"github.com/target/admin-panel/internal/service"
)

// devJWTSecret signs tokens in dev mode when AUTH_JWT_SECRET is unset.
const devJWTSecret = "adminpanel-dev-secret-do-not-use-in-prod"

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	IsDev       bool
	Users       core.UserRepository
	Hasher      ports.PasswordHasher
	RedisClient redis.UniversalClient
	// Sessions overrides the Redis session store built from RedisClient.
	Sessions ports.SessionStore
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

// BuildAuthService creates the auth service for the configured mode. Password
// login is always available; oidc and mock modes add single sign-on.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	if cfg.RedisClient == nil {
		return nil, errors.New("auth: redis client is required for sessions")
	}
	if cfg.Users == nil {
		return nil, errors.New("auth: user repository is required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" && cfg.IsDev {
		if cfg.Logger != nil {
			cfg.Logger.WarnContext(ctx, "AUTH_JWT_SECRET not set; using the development signing secret")
		}
		secret = devJWTSecret
	}
	issuer, err := token.NewJWTIssuer(secret, token.WithClock(clock), token.WithIssuer(cfg.Auth.JWTIssuer))
	if err != nil {
		return nil, fmt.Errorf("auth: token issuer: %w", err)
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = passwords.BcryptHasher{}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = redisadapter.NewSessionStore(cfg.RedisClient, redisadapter.WithClock(clock))
	}

	sso, err := buildSSO(ctx, cfg, clock)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Users: cfg.Users,
		Security: service.AuthSecurity{
			Sessions: sessions,
			Tokens:   issuer,
			Hasher:   hasher,
		},
		SSO: sso,
		Config: service.AuthConfig{
			SessionTTL: cfg.Auth.SessionTTL,
			StateTTL:   cfg.Auth.StateTTL,
			Clock:      clock,
			Logger:     cfg.Logger,
		},
	}), nil
}

// buildSSO returns nil for password mode.
func buildSSO(ctx context.Context, cfg AuthConfig, clock clockwork.Clock) (*service.SSOOptions, error) {
	var (
		prov ports.AuthProvider
		err  error
	)
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		prov, err = devauth.NewProvider(devauth.Config{
			UserID:          cfg.Auth.DevAuth.UserID,
			Email:           cfg.Auth.DevAuth.Email,
			FirstName:       cfg.Auth.DevAuth.FirstName,
			LastName:        cfg.Auth.DevAuth.LastName,
			Groups:          cfg.Auth.DevAuth.Groups,
			SessionDuration: cfg.Auth.SessionTTL,
			Clock:           clock,
		})
	case config.AuthModeOIDC:
		oauth := cfg.Auth.OAuth
		prov, err = oidc.NewProvider(ctx, oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			DiscoveryURL: oauth.DiscoveryURL,
		})
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: %s provider: %w", cfg.Auth.Mode, err)
	}

	if cfg.Logger != nil {
		cfg.Logger.InfoContext(ctx, "single sign-on enabled", "mode", cfg.Auth.Mode)
	}
	return &service.SSOOptions{
		Provider: prov,
		States:   redisadapter.NewStateStore(cfg.RedisClient),
		Roles:    authroles.New(cfg.Auth.AdminGroups, cfg.Auth.EditorGroups),
	}, nil
}
