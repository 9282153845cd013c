package httpx

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/admin-panel/internal/domain/model"
	"github.com/target/admin-panel/internal/observability/metrics"
)

type testRouter struct {
	handler   http.Handler
	auth      *fakeAuthService
	templates *memResource[model.Template, model.CreateTemplateRequest, model.UpdateTemplateRequest]
	metrics   *metrics.HTTPMetrics
}

func newTestRouter(t *testing.T, sso bool) *testRouter {
	t.Helper()
	auth := newFakeAuth()
	auth.sso = sso
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)
	tr := &testRouter{auth: auth, templates: newTemplateStore(), metrics: m}
	tr.handler = NewRouter(RouterServices{
		Auth:           auth,
		Users:          newUserStore(),
		Templates:      tr.templates,
		Menus:          newMenuStore(),
		Forms:          newFormStore(),
		Dashboard:      fakeDashboard{stats: model.DashboardStats{Users: 1, Templates: 2, Menus: 3, Forms: 4}},
		Settings:       &fakeSettings{cur: model.DefaultSettings()},
		Metrics:        m,
		MetricsHandler: metrics.Handler(reg),
	})
	return tr
}

func (tr *testRouter) do(method, path, token, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	tr.handler.ServeHTTP(w, req)
	return w
}

func TestRouter_AccessMatrix(t *testing.T) {
	tr := newTestRouter(t, false)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		want   int
	}{
		{"dashboard anonymous", http.MethodGet, "/dashboard", "", "", http.StatusUnauthorized},
		{"dashboard viewer", http.MethodGet, "/dashboard", "viewer-token", "", http.StatusOK},
		{"users viewer", http.MethodGet, "/users", "viewer-token", "", http.StatusForbidden},
		{"users editor", http.MethodGet, "/users", "editor-token", "", http.StatusForbidden},
		{"users admin", http.MethodGet, "/users", "admin-token", "", http.StatusOK},
		{"templates viewer read", http.MethodGet, "/templates", "viewer-token", "", http.StatusOK},
		{"templates viewer create", http.MethodPost, "/templates", "viewer-token", `{"title":"x"}`, http.StatusForbidden},
		{"templates editor create", http.MethodPost, "/templates", "editor-token", `{"title":"About Us"}`, http.StatusCreated},
		{"menus editor delete missing", http.MethodDelete, "/menus/nope", "editor-token", "", http.StatusNotFound},
		{"forms viewer delete", http.MethodDelete, "/forms/f1", "viewer-token", "", http.StatusForbidden},
		{"settings viewer read", http.MethodGet, "/settings", "viewer-token", "", http.StatusOK},
		{"settings editor write", http.MethodPut, "/settings", "editor-token", `{"theme":"dark"}`, http.StatusForbidden},
		{"settings admin write", http.MethodPut, "/settings", "admin-token", `{"theme":"DARK","font":"lato"}`, http.StatusOK},
		{"healthz", http.MethodGet, "/healthz", "", "", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", "admin-token", "", http.StatusNotFound},
		{"sso disabled", http.MethodGet, "/auth/sso/login", "", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tr.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestRouter_TemplateLifecycle(t *testing.T) {
	tr := newTestRouter(t, false)

	w := tr.do(http.MethodPost, "/templates", "editor-token", `{"title":"About Us"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "about-us", created.Slug)
	assert.Equal(t, model.TemplateTypeStatic, created.Type)

	w = tr.do(http.MethodPatch, "/templates/"+created.ID, "editor-token", `{"title":"About"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = tr.do(http.MethodGet, "/templates/"+created.ID, "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got model.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "About", got.Title)

	w = tr.do(http.MethodPut, "/templates/"+created.ID, "editor-token", `{"title":"Team","slug":"team","type":"dynamic"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = tr.do(http.MethodDelete, "/templates/"+created.ID, "editor-token", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = tr.do(http.MethodGet, "/templates/"+created.ID, "viewer-token", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CreateValidationError(t *testing.T) {
	tr := newTestRouter(t, false)

	w := tr.do(http.MethodPost, "/templates", "admin-token", `{"title":"  "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Equal(t, model.MsgTitleRequired, resp.Fields["title"])
}

func TestRouter_ListIsBareArrayAndParsesQuery(t *testing.T) {
	tr := newTestRouter(t, false)

	w := tr.do(http.MethodGet, "/templates?q=+home+&limit=5&offset=-3&sort=title&dir=asc", "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []model.Template
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, model.ListOptions{Q: "home", Limit: 5, Offset: 0, Sort: "title", Dir: "asc"}, tr.templates.lastList)

	w = tr.do(http.MethodGet, "/menus", "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_DashboardCounts(t *testing.T) {
	tr := newTestRouter(t, false)
	w := tr.do(http.MethodGet, "/dashboard", "viewer-token", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"users":1,"templates":2,"menus":3,"forms":4}`, w.Body.String())
}

func TestRouter_MetricsUseRoutePattern(t *testing.T) {
	tr := newTestRouter(t, false)
	tr.do(http.MethodGet, "/templates/t1", "viewer-token", "")
	tr.do(http.MethodGet, "/templates/t1", "viewer-token", "")

	got := testutil.ToFloat64(tr.metrics.RequestsTotal.WithLabelValues(http.MethodGet, "GET /templates/{id}", "200"))
	assert.InDelta(t, 2.0, got, 0)

	w := tr.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "adminpanel_http_requests_total")
}
