package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const readyTimeout = 2 * time.Second

// ReadyCheck reports whether a backing dependency is reachable.
type ReadyCheck func(ctx context.Context) error

// healthHandler returns 200 with {"status":"ok"}, or 503 when a ready check fails.
func healthHandler(checks map[string]ReadyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		failed := map[string]string{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				LoggerFromContext(r.Context()).WarnContext(ctx, "health check failed",
					slog.String("check", name), slog.Any("error", err))
				failed[name] = "unavailable"
			}
		}
		if len(failed) > 0 {
			writeHealth(w, r, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "checks": failed})
			return
		}
		writeHealth(w, r, http.StatusOK, map[string]any{"status": "ok"})
	}
}

func writeHealth(w http.ResponseWriter, r *http.Request, code int, body any) {
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		return
	}
	WriteJSON(w, code, body)
}
