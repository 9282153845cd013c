package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/config"
	"github.com/target/admin-panel/internal/mocks"
	"go.uber.org/mock/gomock"
)

func newAuthConfig(t *testing.T, mode config.AuthMode) AuthConfig {
	t.Helper()
	// The client never dials: nothing below issues a command.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	return AuthConfig{
		Auth: config.AuthConfig{
			Mode:       mode,
			JWTSecret:  "0123456789abcdef0123456789abcdef",
			SessionTTL: time.Hour,
			StateTTL:   time.Minute,
			DevAuth: config.DevAuthConfig{
				UserID: "dev",
				Email:  "dev@example.com",
				Groups: []string{"admins"},
			},
			AdminGroups: "admins",
		},
		Users:       mocks.NewMockUserRepository(gomock.NewController(t)),
		RedisClient: client,
		Clock:       clockwork.NewFakeClock(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestBuildAuthService_RequiresRedis(t *testing.T) {
	cfg := newAuthConfig(t, config.AuthModePassword)
	cfg.RedisClient = nil

	_, err := BuildAuthService(context.Background(), cfg)
	require.ErrorContains(t, err, "redis client is required")
}

func TestBuildAuthService_Modes(t *testing.T) {
	tests := []struct {
		mode config.AuthMode
		sso  bool
	}{
		{config.AuthModePassword, false},
		{config.AuthModeMock, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			svc, err := BuildAuthService(context.Background(), newAuthConfig(t, tt.mode))
			require.NoError(t, err)
			assert.Equal(t, tt.sso, svc.SSOEnabled())
		})
	}
}

func TestBuildAuthService_Secret(t *testing.T) {
	cfg := newAuthConfig(t, config.AuthModePassword)
	cfg.Auth.JWTSecret = ""

	_, err := BuildAuthService(context.Background(), cfg)
	require.Error(t, err, "missing secret outside dev mode")

	cfg.IsDev = true
	_, err = BuildAuthService(context.Background(), cfg)
	require.NoError(t, err)
}

func TestBuildAuthService_MockNeedsIdentity(t *testing.T) {
	cfg := newAuthConfig(t, config.AuthModeMock)
	cfg.Auth.DevAuth.UserID = ""

	_, err := BuildAuthService(context.Background(), cfg)
	require.ErrorContains(t, err, "UserID is required")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("loud"))
}
