package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/target/admin-panel/internal/domain/model"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// ParseListOptions reads q, limit, offset, sort and dir from the query string.
// Paging bounds are clamped by the repositories.
func ParseListOptions(r *http.Request) model.ListOptions {
	q := r.URL.Query()
	offset := parseIntQuery(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return model.ListOptions{
		Q:      strings.TrimSpace(q.Get("q")),
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: offset,
		Sort:   q.Get("sort"),
		Dir:    q.Get("dir"),
	}
}
