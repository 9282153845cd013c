package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/target/admin-panel/internal/domain/auth"
	"github.com/target/admin-panel/internal/domain/model"
	apperrors "github.com/target/admin-panel/internal/errors"
	"github.com/target/admin-panel/internal/observability/metrics"
	"github.com/target/admin-panel/internal/service"
	"github.com/target/admin-panel/internal/validation"
)

// Login method labels.
const (
	loginMethodPassword = "password"
	loginMethodSSO      = "sso"
)

// AuthServiceInterface defines the interface for authentication service operations.
type AuthServiceInterface interface {
	Authenticator
	SSOEnabled() bool
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, sess domainauth.Session) (*model.User, error)
	UpdateProfile(ctx context.Context, sess domainauth.Session, req model.UpdateProfileRequest) (*model.User, error)
	ChangePassword(ctx context.Context, sess domainauth.Session, req model.ChangePasswordRequest) error
	BeginSSO(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteSSO(ctx context.Context, code, state string) (*model.LoginResponse, error)
}

// AuthHandlers serves the /auth endpoints.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Metrics *metrics.HTTPMetrics // optional
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles POST /auth/login with username/password credentials.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	resp, err := h.Svc.Login(r.Context(), req)
	if err != nil {
		h.Metrics.ObserveLogin(loginMethodPassword, loginResult(err))
		RenderError(w, r, err)
		return
	}
	h.Metrics.ObserveLogin(loginMethodPassword, metrics.ResultSuccess)
	WriteJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout by revoking the caller's session.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}
	if err := h.Svc.Logout(r.Context(), sess.ID); err != nil {
		RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}
	user, err := h.Svc.Me(r.Context(), sess)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Profile handles PATCH /auth/profile.
func (h *AuthHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}
	var req model.UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	user, err := h.Svc.UpdateProfile(r.Context(), sess, req)
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// Password handles POST /auth/password.
func (h *AuthHandlers) Password(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		writeAuthRequired(w)
		return
	}
	var req model.ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.ChangePassword(r.Context(), sess, req); err != nil {
		RenderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SSOLogin handles GET /auth/sso/login and returns the IdP URL to visit.
func (h *AuthHandlers) SSOLogin(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.BeginSSO(r.Context(), r.URL.Query().Get("redirect_uri"))
	if err != nil {
		RenderError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// SSOCallback handles GET /auth/sso/callback and returns a login response.
func (h *AuthHandlers) SSOCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if idpErr := q.Get("error"); idpErr != "" {
		h.logger().WarnContext(r.Context(), "sso provider returned error",
			"error", idpErr, "description", q.Get("error_description"))
		h.Metrics.ObserveLogin(loginMethodSSO, metrics.ResultDenied)
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: string(apperrors.ErrCodeUnauthorized),
			Message: "Single sign-on was cancelled or denied",
		})
		return
	}
	resp, err := h.Svc.CompleteSSO(r.Context(), q.Get("code"), q.Get("state"))
	if err != nil {
		h.Metrics.ObserveLogin(loginMethodSSO, loginResult(err))
		RenderError(w, r, err)
		return
	}
	h.Metrics.ObserveLogin(loginMethodSSO, metrics.ResultSuccess)
	WriteJSON(w, http.StatusOK, resp)
}

// loginResult separates rejected credentials from server failures.
func loginResult(err error) string {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		return metrics.ResultDenied
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeForbidden, apperrors.ErrCodeValidation:
		return metrics.ResultDenied
	}
	return metrics.ResultError
}
