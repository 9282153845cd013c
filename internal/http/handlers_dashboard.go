package httpx

import (
	"context"
	"net/http"

	"github.com/target/admin-panel/internal/domain/model"
)

// DashboardService provides the dashboard counts.
type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

// SettingsService reads and replaces the settings singleton.
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Put(ctx context.Context, req model.UpdateSettingsRequest) (*model.Settings, error)
}

// DashboardHandlers serves GET /dashboard.
type DashboardHandlers struct {
	Svc DashboardService
}

// Stats returns per-resource record counts.
func (h *DashboardHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// SettingsHandlers serves /settings.
type SettingsHandlers struct {
	Svc SettingsService
}

// Get handles GET /settings.
func (h *SettingsHandlers) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Svc.Get(r.Context())
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

// Put handles PUT /settings.
func (h *SettingsHandlers) Put(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateSettingsRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	s, err := h.Svc.Put(r.Context(), req)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}
