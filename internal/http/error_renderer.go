package httpx

import (
	"errors"
	"net/http"

	apperrors "github.com/target/admin-panel/internal/errors"
	obserrors "github.com/target/admin-panel/internal/observability/errors"
	"github.com/target/admin-panel/internal/validation"
)

const msgInternal = "Internal server error"

// statusByCode maps application error codes to HTTP statuses.
var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeNotFound:     http.StatusNotFound,
	apperrors.ErrCodeConflict:     http.StatusConflict,
	apperrors.ErrCodeValidation:   http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized: http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:    http.StatusForbidden,
	apperrors.ErrCodeTimeout:      http.StatusGatewayTimeout,
	apperrors.ErrCodeCanceled:     http.StatusRequestTimeout,
}

// RenderError classifies err and writes the JSON error envelope.
//   - validation.FieldErrors become 400 with per-field messages;
//   - AppErrors use their code and message;
//   - anything else is a 500 whose details are logged, never sent.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Message: fe.Error(),
			Fields:  fe,
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			p := ErrorParams{Code: status, ErrCode: string(appErr.Code), Message: appErr.Message}
			if appErr.Field != "" {
				p.Fields = map[string]string{appErr.Field: appErr.Message}
			}
			WriteError(w, p)
			return
		}
	}

	LoggerFromContext(r.Context()).ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
		"error_class", obserrors.Classify(err),
	)
	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: string(apperrors.ErrCodeInternal), Message: msgInternal})
}
