package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/target/admin-panel/config"
	"github.com/target/admin-panel/internal/adapters/passwords"
	redisadapter "github.com/target/admin-panel/internal/adapters/redis"
	"github.com/target/admin-panel/internal/core"
	"github.com/target/admin-panel/internal/data"
	"github.com/target/admin-panel/internal/observability/metrics"
	"github.com/target/admin-panel/internal/observability/statsd"
	"github.com/target/admin-panel/internal/ports"
	"github.com/target/admin-panel/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Templates     *service.TemplateService
	Menus         *service.MenuService
	Forms         *service.FormService
	Dashboard     *service.DashboardService
	Settings      *service.SettingsService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	Registry      *prometheus.Registry
	HTTPMetrics   *metrics.HTTPMetrics
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// Close releases the StatsD connection, if any.
func (o ObservabilityContainer) Close() error {
	if o.MetricsSink == nil {
		return nil
	}
	return o.MetricsSink.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Users     *data.UserRepo
	Templates *data.TemplateRepo
	Menus     *data.MenuRepo
	Forms     *data.FormRepo
	Settings  *data.SettingsRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Users:     data.NewUserRepo(db),
		Templates: data.NewTemplateRepo(db),
		Menus:     data.NewMenuRepo(db),
		Forms:     data.NewFormRepo(db),
		Settings:  data.NewSettingsRepo(db),
	}
}

// dashboardCache returns nil when caching is off or Redis is absent.
func dashboardCache(deps *ServiceDeps) core.CacheRepository {
	if deps.RedisClient == nil || deps.Config.Dashboard.CacheTTL <= 0 {
		return nil
	}
	return data.NewRedisCacheRepo(deps.RedisClient)
}

func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obs := ObservabilityContainer{MetricsConfig: cfg.Metrics}
	if cfg.Metrics.PrometheusEnabled {
		obs.Registry = metrics.NewRegistry()
		obs.HTTPMetrics = metrics.NewHTTPMetrics(obs.Registry)
	}

	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.StatsdPrefix,
			Tags:    cfg.Metrics.StatsdTags,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to initialise statsd client", "error", err)
		} else {
			obs.MetricsSink = client
			if obs.HTTPMetrics == nil {
				// StatsD mirroring still needs the observer; register it on a private registry.
				obs.HTTPMetrics = metrics.NewHTTPMetrics(prometheus.NewRegistry())
			}
			obs.HTTPMetrics.Sink = client
		}
	}
	return obs
}

// NewServices wires repositories and services for the API.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil || deps.DB == nil {
		return ServiceContainer{}, errors.New("services: config and database are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos := buildRepositories(deps.DB)
	hasher := passwords.BcryptHasher{}
	var sessions ports.SessionStore
	if deps.RedisClient != nil {
		sessions = redisadapter.NewSessionStore(deps.RedisClient)
	}

	auth, err := BuildAuthService(ctx, AuthConfig{
		Auth:        deps.Config.Auth,
		IsDev:       deps.Config.IsDev,
		Users:       repos.Users,
		Hasher:      hasher,
		RedisClient: deps.RedisClient,
		Sessions:    sessions,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	users := service.NewUserService(service.UserServiceOptions{
		Repo:     repos.Users,
		Hasher:   hasher,
		Sessions: sessions,
		Logger:   logger,
	})

	return ServiceContainer{
		Auth:      auth,
		Users:     users,
		Templates: service.NewTemplateService(service.TemplateServiceOptions{Repo: repos.Templates}),
		Menus:     service.NewMenuService(service.MenuServiceOptions{Repo: repos.Menus}),
		Forms:     service.NewFormService(service.FormServiceOptions{Repo: repos.Forms}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Users:     repos.Users,
			Templates: repos.Templates,
			Menus:     repos.Menus,
			Forms:     repos.Forms,
			Cache:     dashboardCache(deps),
			CacheTTL:  deps.Config.Dashboard.CacheTTL,
			Logger:    logger,
		}),
		Settings:      service.NewSettingsService(service.SettingsServiceOptions{Repo: repos.Settings}),
		Observability: buildObservability(logger, deps.Config.Observability),
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and blocks until a shutdown
// signal is received or the server fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:      cfg.Config,
		Services:    cfg.Services,
		DB:          cfg.DB,
		RedisClient: cfg.RedisClient,
		Logger:      logger,
		ErrCh:       errCh,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return waitForShutdown(shutdownConfig{
		quit:       quit,
		errCh:      errCh,
		httpServer: server,
		timeout:    cfg.Config.HTTP.ShutdownTimeout,
		closers:    []func() error{cfg.Services.Observability.Close},
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	quit       <-chan os.Signal
	errCh      <-chan error
	httpServer *http.Server
	timeout    time.Duration
	closers    []func() error
	logger     *slog.Logger
}

// waitForShutdown waits for shutdown signal or server error.
func waitForShutdown(cfg shutdownConfig) error {
	select {
	case <-cfg.quit:
		cfg.logger.Info("shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains the HTTP server, then releases the remaining resources.
func gracefulStop(cfg shutdownConfig) error {
	var errs []error
	if err := ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  cfg.httpServer,
		Timeout: cfg.timeout,
		Logger:  cfg.logger,
	}); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	for _, closeFn := range cfg.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
