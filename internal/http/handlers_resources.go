package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/target/admin-panel/internal/domain/model"
	apperrors "github.com/target/admin-panel/internal/errors"
)

// ResourceService is the CRUD surface shared by users, templates, menus and forms.
// C is the create (and full replace) body, U the partial update body.
type ResourceService[T, C, U any] interface {
	List(ctx context.Context, opts model.ListOptions) ([]*T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req *C) (*T, error)
	Update(ctx context.Context, id string, req U) (*T, error)
	Replace(ctx context.Context, id string, req C) (*T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ResourceHandlers serves the collection and item endpoints of one resource.
type ResourceHandlers[T, C, U any] struct {
	Svc ResourceService[T, C, U]
	// Name is the singular display name used in not-found messages, e.g. "Template".
	Name string
	// OnCountChange, if set, runs after a successful create or delete.
	OnCountChange func(ctx context.Context)
}

func (h *ResourceHandlers[T, C, U]) countChanged(ctx context.Context) {
	if h.OnCountChange != nil {
		h.OnCountChange(ctx)
	}
}

// List handles GET /<resource>. The response is a bare JSON array.
func (h *ResourceHandlers[T, C, U]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Svc.List(r.Context(), ParseListOptions(r))
	if err != nil {
		RenderError(w, r, err)
		return
	}
	if items == nil {
		items = []*T{}
	}
	WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /<resource>/{id}.
func (h *ResourceHandlers[T, C, U]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Create handles POST /<resource>.
func (h *ResourceHandlers[T, C, U]) Create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !DecodeJSON(w, r, &req) {
		return
	}
	item, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	h.countChanged(r.Context())
	WriteJSON(w, http.StatusCreated, item)
}

// Update handles PATCH /<resource>/{id}.
func (h *ResourceHandlers[T, C, U]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req U
	if !DecodeJSON(w, r, &req) {
		return
	}
	item, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Replace handles PUT /<resource>/{id}.
func (h *ResourceHandlers[T, C, U]) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req C
	if !DecodeJSON(w, r, &req) {
		return
	}
	item, err := h.Svc.Replace(r.Context(), id, req)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /<resource>/{id}.
func (h *ResourceHandlers[T, C, U]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	if !deleted {
		RenderError(w, r, apperrors.NotFoundf("%s not found", h.Name))
		return
	}
	h.countChanged(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_id", Message: "id is required"})
		return "", false
	}
	return id, true
}
