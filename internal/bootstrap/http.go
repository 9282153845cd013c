package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/admin-panel/config"
	httpx "github.com/target/admin-panel/internal/http"
	"github.com/target/admin-panel/internal/observability/metrics"
)

const defaultShutdownTimeout = 15 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
	// ErrCh receives the listener error if the server stops unexpectedly.
	ErrCh chan<- error
}

// BuildHTTPHandler assembles the API handler from the service container.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	checks := map[string]httpx.ReadyCheck{}
	if cfg.DB != nil {
		checks["database"] = DBReadyCheck(cfg.DB)
	}
	if cfg.RedisClient != nil {
		checks["redis"] = RedisReadyCheck(cfg.RedisClient)
	}

	obs := cfg.Services.Observability
	var metricsHandler http.Handler
	if obs.Registry != nil {
		metricsHandler = metrics.Handler(obs.Registry)
	}

	return httpx.NewRouter(httpx.RouterServices{
		Auth:           cfg.Services.Auth,
		Users:          cfg.Services.Users,
		Templates:      cfg.Services.Templates,
		Menus:          cfg.Services.Menus,
		Forms:          cfg.Services.Forms,
		Dashboard:      cfg.Services.Dashboard,
		Settings:       cfg.Services.Settings,
		Metrics:        obs.HTTPMetrics,
		MetricsHandler: metricsHandler,
		LoginRateLimit: httpx.RateLimitConfig{
			PerSecond: appCfg.Auth.LoginRateLimit.PerSecond,
			Burst:     appCfg.Auth.LoginRateLimit.Burst,
		},
		ReadyChecks: checks,
		Logger:      logger,
	})
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpCfg := config.HTTPConfig{}
	if cfg.Config != nil {
		httpCfg = cfg.Config.HTTP
	}

	server := newServer(httpCfg, BuildHTTPHandler(cfg))
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if cfg.ErrCh != nil {
				cfg.ErrCh <- err
			}
		}
	}()
	return server
}

func newServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
