package httpx

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	apperrors "github.com/target/admin-panel/internal/errors"
	"github.com/target/admin-panel/internal/service"
)

// fakeAuthService resolves tokens from a fixed table.
type fakeAuthService struct {
	sessions   map[string]domainauth.Session
	sso        bool
	loginFunc  func(req model.LoginRequest) (*model.LoginResponse, error)
	passwordFn func(req model.ChangePasswordRequest) error
	loggedOut  []string
}

func newFakeAuth() *fakeAuthService {
	return &fakeAuthService{sessions: map[string]domainauth.Session{
		"admin-token":  {ID: "s-admin", UserID: "u-admin", Username: "admin", Role: domainauth.RoleAdmin},
		"editor-token": {ID: "s-editor", UserID: "u-editor", Username: "ed", Role: domainauth.RoleEditor},
		"viewer-token": {ID: "s-viewer", UserID: "u-viewer", Username: "vi", Role: domainauth.RoleViewer},
	}}
}

func (f *fakeAuthService) Authenticate(_ context.Context, token string) (domainauth.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return domainauth.Session{}, apperrors.Unauthorized("Authentication required")
	}
	return s, nil
}

func (f *fakeAuthService) SSOEnabled() bool { return f.sso }

func (f *fakeAuthService) Login(_ context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	return f.loginFunc(req)
}

func (f *fakeAuthService) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	return nil
}

func (f *fakeAuthService) Me(_ context.Context, sess domainauth.Session) (*model.User, error) {
	return &model.User{ID: sess.UserID, Username: sess.Username, Role: sess.Role}, nil
}

func (f *fakeAuthService) UpdateProfile(
	_ context.Context,
	sess domainauth.Session,
	req model.UpdateProfileRequest,
) (*model.User, error) {
	u := &model.User{ID: sess.UserID, Username: sess.Username, Role: sess.Role}
	if req.Name != nil {
		u.Name = *req.Name
	}
	return u, nil
}

func (f *fakeAuthService) ChangePassword(_ context.Context, _ domainauth.Session, req model.ChangePasswordRequest) error {
	if f.passwordFn != nil {
		return f.passwordFn(req)
	}
	return nil
}

func (f *fakeAuthService) BeginSSO(_ context.Context, redirect string) (*service.BeginLoginResult, error) {
	return &service.BeginLoginResult{AuthURL: "https://idp.example.com/authorize?redirect=" + redirect, State: "st"}, nil
}

func (f *fakeAuthService) CompleteSSO(_ context.Context, code, state string) (*model.LoginResponse, error) {
	if code != "good" || state != "st" {
		return nil, apperrors.Unauthorized("Single sign-on failed")
	}
	return &model.LoginResponse{Token: "sso-token", User: &model.User{ID: "u-sso"}}, nil
}

// memResource is an in-memory ResourceService keyed by id.
type memResource[T, C, U any] struct {
	mu       sync.Mutex
	items    map[string]*T
	lastList model.ListOptions
	create   func(id string, req *C) (*T, error)
	update   func(cur *T, req U) *T
	replace  func(cur *T, req C) *T
	seq      int
}

func (m *memResource[T, C, U]) List(_ context.Context, opts model.ListOptions) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = opts
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *memResource[T, C, U]) GetByID(_ context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.items[id]; ok {
		return it, nil
	}
	return nil, apperrors.NotFoundf("not found")
}

func (m *memResource[T, C, U]) Create(_ context.Context, req *C) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := "id-" + strconv.Itoa(m.seq)
	it, err := m.create(id, req)
	if err != nil {
		return nil, err
	}
	m.items[id] = it
	return it, nil
}

func (m *memResource[T, C, U]) Update(_ context.Context, id string, req U) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok {
		return nil, apperrors.NotFoundf("not found")
	}
	m.items[id] = m.update(cur, req)
	return m.items[id], nil
}

func (m *memResource[T, C, U]) Replace(_ context.Context, id string, req C) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok {
		return nil, apperrors.NotFoundf("not found")
	}
	m.items[id] = m.replace(cur, req)
	return m.items[id], nil
}

func (m *memResource[T, C, U]) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func newTemplateStore() *memResource[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest] {
	return &memResource[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]{
		items: map[string]*model.Template{
			"t1": {ID: "t1", Title: "Home", Slug: "home", Type: model.TemplateTypeStatic},
		},
		create: func(id string, req *model.CreateTemplateRequest) (*model.Template, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &model.Template{ID: id, Title: req.Title, Slug: req.Slug, Type: req.Type}, nil
		},
		update: func(cur *model.Template, req model.UpdateTemplateRequest) *model.Template {
			next := *cur
			if req.Title != nil {
				next.Title = *req.Title
			}
			return &next
		},
		replace: func(cur *model.Template, req model.CreateTemplateRequest) *model.Template {
			return &model.Template{ID: cur.ID, Title: req.Title, Slug: req.Slug, Type: req.Type}
		},
	}
}

func newUserStore() *memResource[model.User, model.CreateUserRequest, model.UpdateUserRequest] {
	return &memResource[model.User, model.CreateUserRequest, model.UpdateUserRequest]{
		items: map[string]*model.User{"u1": {ID: "u1", Username: "admin", Role: domainauth.RoleAdmin}},
		create: func(id string, req *model.CreateUserRequest) (*model.User, error) {
			if err := req.Validate(); err != nil {
				return nil, err
			}
			return &model.User{ID: id, Username: req.Username, Email: req.Email, Role: req.Role}, nil
		},
		update:  func(cur *model.User, _ model.UpdateUserRequest) *model.User { return cur },
		replace: func(cur *model.User, _ model.CreateUserRequest) *model.User { return cur },
	}
}

func newMenuStore() *memResource[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest] {
	return &memResource[model.Menu, model.CreateMenuRequest, model.UpdateMenuRequest]{
		items: map[string]*model.Menu{},
		create: func(id string, req *model.CreateMenuRequest) (*model.Menu, error) {
			return &model.Menu{ID: id, Title: req.Title}, nil
		},
		update:  func(cur *model.Menu, _ model.UpdateMenuRequest) *model.Menu { return cur },
		replace: func(cur *model.Menu, _ model.CreateMenuRequest) *model.Menu { return cur },
	}
}

func newFormStore() *memResource[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest] {
	return &memResource[model.FormSubmission, model.CreateFormRequest, model.UpdateFormRequest]{
		items: map[string]*model.FormSubmission{},
		create: func(id string, req *model.CreateFormRequest) (*model.FormSubmission, error) {
			return &model.FormSubmission{ID: id, Name: req.Name}, nil
		},
		update:  func(cur *model.FormSubmission, _ model.UpdateFormRequest) *model.FormSubmission { return cur },
		replace: func(cur *model.FormSubmission, _ model.CreateFormRequest) *model.FormSubmission { return cur },
	}
}

type fakeDashboard struct{ stats model.DashboardStats }

func (f fakeDashboard) Stats(context.Context) (*model.DashboardStats, error) { return &f.stats, nil }

type fakeSettings struct{ cur model.Settings }

func (f *fakeSettings) Get(context.Context) (*model.Settings, error) { return &f.cur, nil }

func (f *fakeSettings) Put(_ context.Context, req model.UpdateSettingsRequest) (*model.Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	f.cur = model.Settings{Theme: req.Theme, Font: req.Font, Logo: req.Logo}
	return &f.cur, nil
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
