package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/target/admin-panel/internal/data/database"
	"github.com/target/admin-panel/internal/data/pgxutil"
	apperrors "github.com/target/admin-panel/internal/errors"
)

const (
	sortDirAsc       = "ASC"
	sortDirDesc      = "DESC"
	defaultPageLimit = 50
	maxPageLimit     = 500
)

// validID reports whether id can be compared against a UUID column.
// Malformed IDs are treated as not found instead of surfacing a cast error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// queryOne runs q and collects exactly one row into T.
func queryOne[T any](ctx context.Context, db *sql.DB, q string, args ...any) (*T, error) {
	var out T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// queryAll runs q and collects every row into T.
func queryAll[T any](ctx context.Context, db *sql.DB, q string, args ...any) ([]*T, error) {
	var rowsOut []T
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	res := make([]*T, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// countRows returns COUNT(*) for table filtered by conds.
func countRows(ctx context.Context, db *sql.DB, table string, conds ...database.Condition) (int, error) {
	opts := []database.ListQueryOption{database.WithCountOnly()}
	for _, c := range conds {
		opts = append(opts, database.WithCondition(c))
	}
	query, args := database.BuildListQuery(database.NewListQueryOptions(table, opts...))

	var n int64
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return int(n), nil
}

// deleteByID removes the row with id from table and reports whether a row was deleted.
func deleteByID(ctx context.Context, db *sql.DB, table, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	var affected int64
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, "DELETE FROM "+pgx.Identifier{table}.Sanitize()+" WHERE id = $1", id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return affected > 0, nil
}

// setBuilder accumulates "col = $n" fragments for a dynamic UPDATE.
type setBuilder struct {
	parts []string
	args  []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.parts = append(b.parts, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.parts) == 0 }

// updateQuery renders "UPDATE table SET ... WHERE id = $n RETURNING cols".
func (b *setBuilder) updateQuery(table, id string, cols []string) (string, []any) {
	args := append(b.args, id)
	q := "UPDATE " + table + " SET " + strings.Join(b.parts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + strings.Join(cols, ", ")
	return q, args
}

// mapWriteErr translates pgx/pg errors into repository sentinels.
// uniques maps a violating column to the sentinel returned for it.
func mapWriteErr(err, notFound error, uniques map[string]error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	mapped := apperrors.MapDBError(err)
	if apperrors.IsConflict(mapped) {
		if sentinel, ok := uniques[apperrors.GetField(mapped)]; ok {
			return sentinel
		}
	}
	return mapped
}

// pageBounds clamps limit/offset the same way for every list query.
func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return limit, max(offset, 0)
}

// validateSortOptions validates and returns safe sort column and direction.
// allowed maps user-facing sort keys to column names.
func validateSortOptions(sort, dir string, allowed map[string]string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if col, ok := allowed[strings.ToLower(strings.TrimSpace(sort))]; ok {
		sortCol = col
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "asc":
		sortDir = sortDirAsc
	case "desc":
		sortDir = sortDirDesc
	}
	return sortCol, sortDir
}
