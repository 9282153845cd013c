// Package errors labels unexpected errors for logs and metrics.
package errors

import (
	"context"
	"database/sql"
	goerrors "errors"
	"net"
	"reflect"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
)

// Classify returns a short, low-cardinality label for err.
// Well-known failures (context, sql, redis, network, postgres) get fixed names;
// anything else is labelled by the innermost concrete type, e.g. "service_quotaerror".
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	case goerrors.Is(err, sql.ErrNoRows):
		return "no_rows"
	case goerrors.Is(err, sql.ErrConnDone), goerrors.Is(err, sql.ErrTxDone):
		return "db_closed"
	case goerrors.Is(err, redis.Nil):
		return "cache_miss"
	}

	var pgErr *pgconn.PgError
	if goerrors.As(err, &pgErr) {
		return "pg_" + pgClass(pgErr.Code)
	}
	var netErr net.Error
	if goerrors.As(err, &netErr) {
		if netErr.Timeout() {
			return "net_timeout"
		}
		return "net"
	}
	return typeName(err)
}

func pgClass(code string) string {
	switch {
	case pgerrcode.IsIntegrityConstraintViolation(code):
		return "constraint"
	case pgerrcode.IsConnectionException(code):
		return "connection"
	case pgerrcode.IsSyntaxErrororAccessRuleViolation(code):
		return "syntax_or_access"
	case pgerrcode.IsInsufficientResources(code):
		return "resources"
	case pgerrcode.IsTransactionRollback(code):
		return "rollback"
	case pgerrcode.IsDataException(code):
		return "data"
	}
	return "other"
}

func typeName(err error) string {
	for {
		next := goerrors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return "unknown"
	}
	return name
}
