package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	apperrors "github.com/target/admin-panel/internal/errors"
	"github.com/target/admin-panel/internal/observability/metrics"
)

type (
	// UserService is the user CRUD surface.
	UserService = ResourceService[model.User, model.CreateUserRequest, model.UpdateUserRequest]
	// TemplateService is the template CRUD surface.
	TemplateService = ResourceService[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]
	// MenuService is the menu CRUD surface.
	MenuService = ResourceService[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]
	// FormService is the form submission CRUD surface.
	FormService = ResourceService[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Users     UserService
	Templates TemplateService
	Menus     MenuService
	Forms     FormService
	Dashboard DashboardService
	Settings  SettingsService

	// Optional: Prometheus request metrics and the /metrics handler.
	Metrics        *metrics.HTTPMetrics
	MetricsHandler http.Handler
	// LoginRateLimit throttles POST /auth/login per client IP.
	LoginRateLimit RateLimitConfig
	// ReadyChecks are run by /healthz.
	ReadyChecks map[string]ReadyCheck
	Logger      *slog.Logger
}

// NewRouter creates and configures the JSON API router.
func NewRouter(services RouterServices) http.Handler {
	if services.Auth == nil || services.Users == nil || services.Templates == nil || services.Menus == nil ||
		services.Forms == nil || services.Dashboard == nil || services.Settings == nil {
		panic("httpx: NewRouter requires every service")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	authed := RequireAuth(services.Auth)
	admin := func(h http.Handler) http.Handler { return authed(RequireRole(domainauth.RoleAdmin)(h)) }
	editor := func(h http.Handler) http.Handler {
		return authed(RequireRole(domainauth.RoleAdmin, domainauth.RoleEditor)(h))
	}

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, Metrics: services.Metrics, Logger: logger}, services)

	mux.Handle("GET /dashboard", authed(http.HandlerFunc((&DashboardHandlers{Svc: services.Dashboard}).Stats)))
	recount := countInvalidator(services.Dashboard, logger)

	registerResource(mux, "/users", &ResourceHandlers[model.User, model.CreateUserRequest, model.UpdateUserRequest]{
		Svc: services.Users, Name: "User", OnCountChange: recount,
	}, admin, admin)
	registerResource(mux, "/templates", &ResourceHandlers[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]{
		Svc: services.Templates, Name: "Template", OnCountChange: recount,
	}, authed, editor)
	registerResource(mux, "/menus", &ResourceHandlers[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]{
		Svc: services.Menus, Name: "Menu", OnCountChange: recount,
	}, authed, editor)
	registerResource(mux, "/forms", &ResourceHandlers[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]{
		Svc: services.Forms, Name: "Form submission", OnCountChange: recount,
	}, authed, editor)

	settings := &SettingsHandlers{Svc: services.Settings}
	mux.Handle("GET /settings", authed(http.HandlerFunc(settings.Get)))
	mux.Handle("PUT /settings", admin(http.HandlerFunc(settings.Put)))

	health := healthHandler(services.ReadyChecks)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}
	mux.Handle("/", http.HandlerFunc(notFoundHandler))

	mws := []func(http.Handler) http.Handler{Recover(logger), Logging(logger)}
	if services.Metrics != nil {
		mws = append(mws, services.Metrics.Middleware(routePattern(mux)))
	}
	return Chain(mux, mws...)
}

// countInvalidator returns a hook that drops cached dashboard counts, or nil
// when the dashboard service does not cache.
func countInvalidator(dash DashboardService, logger *slog.Logger) func(context.Context) {
	inv, ok := dash.(interface {
		Invalidate(ctx context.Context) error
	})
	if !ok {
		return nil
	}
	return func(ctx context.Context) {
		if err := inv.Invalidate(ctx); err != nil {
			logger.WarnContext(ctx, "dashboard cache invalidation failed", "error", err)
		}
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, services RouterServices) {
	authed := RequireAuth(services.Auth)
	mux.Handle("POST /auth/login", RateLimit(services.LoginRateLimit)(http.HandlerFunc(h.Login)))
	mux.Handle("POST /auth/logout", authed(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/me", authed(http.HandlerFunc(h.Me)))
	mux.Handle("PATCH /auth/profile", authed(http.HandlerFunc(h.Profile)))
	mux.Handle("POST /auth/password", authed(http.HandlerFunc(h.Password)))
	if services.Auth.SSOEnabled() {
		mux.Handle("GET /auth/sso/login", http.HandlerFunc(h.SSOLogin))
		mux.Handle("GET /auth/sso/callback", http.HandlerFunc(h.SSOCallback))
	}
}

// registerResource wires the collection and item routes of one resource.
// read guards GET requests; write guards mutations.
func registerResource[T, C, U any](
	mux *http.ServeMux,
	base string,
	h *ResourceHandlers[T, C, U],
	read, write func(http.Handler) http.Handler,
) {
	item := base + "/{id}"
	mux.Handle("GET "+base, read(http.HandlerFunc(h.List)))
	mux.Handle("POST "+base, write(http.HandlerFunc(h.Create)))
	mux.Handle("GET "+item, read(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH "+item, write(http.HandlerFunc(h.Update)))
	mux.Handle("PUT "+item, write(http.HandlerFunc(h.Replace)))
	mux.Handle("DELETE "+item, write(http.HandlerFunc(h.Delete)))
}

// routePattern labels requests with the mux pattern they match.
func routePattern(mux *http.ServeMux) func(*http.Request) string {
	return func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		if pattern == "/" {
			return ""
		}
		return pattern
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	RenderError(w, r, apperrors.NotFoundf("Not found"))
}
