package state

import (
	"context"
	"sync"

	"github.com/target/admin-panel/internal/client"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/forms"
)

type (
	// Users holds the user list.
	Users = Resource[model.User, model.CreateUserRequest, model.UpdateUserRequest]
	// Templates holds the template list.
	Templates = Resource[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]
	// Menus holds the menu list.
	Menus = Resource[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]
	// Forms holds the form submission list.
	Forms = Resource[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]
)

// NewUsers builds the user holder.
func NewUsers(api ResourceAPI[model.User, model.CreateUserRequest, model.UpdateUserRequest]) *Users {
	return NewResource(api, func(u model.User) string { return u.ID }, MessagesFor("user", "users"))
}

// NewTemplates builds the template holder.
func NewTemplates(api ResourceAPI[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]) *Templates {
	return NewResource(api, func(t model.Template) string { return t.ID }, MessagesFor("template", "templates"))
}

// NewMenus builds the menu holder.
func NewMenus(api ResourceAPI[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]) *Menus {
	return NewResource(api, func(m model.Menu) string { return m.ID }, MessagesFor("menu", "menus"))
}

// NewForms builds the form submission holder.
func NewForms(api ResourceAPI[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]) *Forms {
	return NewResource(api, func(f model.FormSubmission) string { return f.ID }, MessagesFor("form", "forms"))
}

// Value is the state of a single-value holder.
type Value[T any] struct {
	Data    *T
	Loading bool
	Error   *string
}

// single holds one remotely loaded value with take-latest loading.
type single[T any] struct {
	mu    sync.Mutex
	state Value[T]
	ops   *latest
	subs  subscribers[Value[T]]
}

func newSingle[T any]() *single[T] { return &single[T]{ops: newLatest()} }

func (h *single[T]) Snapshot() Value[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.copyLocked()
}

func (h *single[T]) copyLocked() Value[T] {
	v := h.state
	if h.state.Data != nil {
		d := *h.state.Data
		v.Data = &d
	}
	if h.state.Error != nil {
		v.Error = ptr(*h.state.Error)
	}
	return v
}

func (h *single[T]) Subscribe(fn func(Value[T])) func() { return h.subs.add(fn) }

func (h *single[T]) ClearError() { h.mutate(func(v *Value[T]) { v.Error = nil }) }

func (h *single[T]) mutate(fn func(v *Value[T])) {
	h.mu.Lock()
	fn(&h.state)
	snap := h.copyLocked()
	h.mu.Unlock()
	h.subs.notify(snap)
}

// run performs call under take-latest semantics for op and stores its result.
func (h *single[T]) run(ctx context.Context, op, fallback string, call func(context.Context) (*T, error)) (*T, error) {
	cctx, ticket := h.ops.start(ctx, op)
	h.mutate(func(v *Value[T]) {
		v.Loading = true
		v.Error = nil
	})
	data, err := call(cctx)
	if !h.ops.finish(op, ticket) {
		return nil, ErrSuperseded
	}
	loading := h.ops.inFlight()
	h.mutate(func(v *Value[T]) {
		v.Loading = loading
		if err != nil {
			v.Error = ptr(errorMessage(err, fallback))
			return
		}
		v.Data = data
	})
	return data, err
}

// DashboardAPI fetches dashboard counts.
type DashboardAPI interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

// Dashboard holds the dashboard counts.
type Dashboard struct {
	*single[model.DashboardStats]
	api DashboardAPI
}

// NewDashboard builds the dashboard holder.
func NewDashboard(api DashboardAPI) *Dashboard {
	return &Dashboard{single: newSingle[model.DashboardStats](), api: api}
}

// Fetch loads the counts.
func (d *Dashboard) Fetch(ctx context.Context) (*model.DashboardStats, error) {
	return d.run(ctx, "fetch", "Failed to load dashboard", d.api.Dashboard)
}

// SettingsAPI reads and replaces settings.
type SettingsAPI interface {
	Get(ctx context.Context) (*model.Settings, error)
	Put(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error)
}

// Settings holds the panel settings.
type Settings struct {
	*single[model.Settings]
	api SettingsAPI
}

// NewSettings builds the settings holder.
func NewSettings(api SettingsAPI) *Settings {
	return &Settings{single: newSingle[model.Settings](), api: api}
}

// Fetch loads the settings.
func (s *Settings) Fetch(ctx context.Context) (*model.Settings, error) {
	return s.run(ctx, "fetch", "Failed to load settings", s.api.Get)
}

// Save validates and replaces the settings. Invalid input never reaches the API.
func (s *Settings) Save(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error) {
	if errs := forms.Settings(req.Theme, req.Font); len(errs) > 0 {
		return nil, errs
	}
	return s.run(ctx, "save", "Failed to save settings", func(ctx context.Context) (*model.Settings, error) {
		return s.api.Put(ctx, req)
	})
}

var (
	_ ResourceAPI[model.User, model.CreateUserRequest, model.UpdateUserRequest] = client.UserResource{}
	_ DashboardAPI                                                              = (*client.Client)(nil)
	_ SettingsAPI                                                               = client.SettingsAPI{}
)
