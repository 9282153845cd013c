// Package database renders the parameterized SELECT statements behind the
// list and count queries. Identifiers are quoted with pgx; values are always
// passed as $n arguments.
package database

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Op is a comparison operator for a single-column condition.
type Op string

const (
	Equal    Op = "="
	NotEqual Op = "<>"
	ILike    Op = "ILIKE"

	search Op = "search"
)

// Condition is one AND-ed term of the WHERE clause.
type Condition struct {
	Fields []string
	Op     Op
	Value  any
}

// WhereCond compares a single column with value.
func WhereCond(field string, op Op, value any) Condition {
	return Condition{Fields: []string{field}, Op: op, Value: value}
}

// WhereSearch matches rows where any of fields contains term, case-insensitively.
// A blank term matches everything.
func WhereSearch(term string, fields ...string) Condition {
	return Condition{Fields: fields, Op: search, Value: strings.TrimSpace(term)}
}

// ListQueryOptions describes a SELECT over one table.
type ListQueryOptions struct {
	Table      string
	Columns    []string
	CountOnly  bool
	Conditions []Condition
	OrderBy    string
	OrderDir   string
	// Limit and Offset are omitted when negative.
	Limit  int
	Offset int
}

// ListQueryOption mutates ListQueryOptions.
type ListQueryOption func(*ListQueryOptions)

// NewListQueryOptions starts an unpaginated SELECT * over table.
func NewListQueryOptions(table string, opts ...ListQueryOption) *ListQueryOptions {
	o := &ListQueryOptions{Table: table, Limit: -1, Offset: -1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithColumns(cols ...string) ListQueryOption {
	return func(o *ListQueryOptions) { o.Columns = cols }
}

func WithCondition(c Condition) ListQueryOption {
	return func(o *ListQueryOptions) { o.Conditions = append(o.Conditions, c) }
}

// WithOrderBy sorts by column; direction is ASC or DESC in any case, anything else is ignored.
func WithOrderBy(column, direction string) ListQueryOption {
	return func(o *ListQueryOptions) { o.OrderBy, o.OrderDir = column, direction }
}

func WithLimit(n int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if n >= 0 {
			o.Limit = n
		}
	}
}

func WithOffset(n int) ListQueryOption {
	return func(o *ListQueryOptions) {
		if n >= 0 {
			o.Offset = n
		}
	}
}

// WithCountOnly selects COUNT(*) and drops ordering and paging.
func WithCountOnly() ListQueryOption {
	return func(o *ListQueryOptions) { o.CountOnly = true }
}

// BuildListQuery renders o as SQL plus its positional arguments.
func BuildListQuery(o *ListQueryOptions) (string, []any) {
	if o == nil {
		return "", nil
	}
	b := &builder{}

	b.sql.WriteString("SELECT ")
	switch {
	case o.CountOnly:
		b.sql.WriteString("COUNT(*)")
	case len(o.Columns) == 0:
		b.sql.WriteString("*")
	default:
		for i, c := range o.Columns {
			if i > 0 {
				b.sql.WriteString(", ")
			}
			b.sql.WriteString(ident(c))
		}
	}
	b.sql.WriteString(" FROM ")
	b.sql.WriteString(ident(o.Table))

	var where []string
	for _, c := range o.Conditions {
		if term := b.condition(c); term != "" {
			where = append(where, term)
		}
	}
	if len(where) > 0 {
		b.sql.WriteString(" WHERE ")
		b.sql.WriteString(strings.Join(where, " AND "))
	}
	if o.CountOnly {
		return b.sql.String(), b.args
	}

	if o.OrderBy != "" {
		b.sql.WriteString(" ORDER BY ")
		b.sql.WriteString(ident(o.OrderBy))
		if dir := strings.ToUpper(o.OrderDir); dir == "ASC" || dir == "DESC" {
			b.sql.WriteString(" " + dir)
		}
	}
	if o.Limit >= 0 {
		b.sql.WriteString(" LIMIT " + b.arg(o.Limit))
	}
	if o.Offset >= 0 {
		b.sql.WriteString(" OFFSET " + b.arg(o.Offset))
	}
	return b.sql.String(), b.args
}

type builder struct {
	sql  strings.Builder
	args []any
}

// arg appends v and returns its placeholder.
func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *builder) condition(c Condition) string {
	if len(c.Fields) == 0 || c.Fields[0] == "" {
		return ""
	}
	switch c.Op {
	case Equal, NotEqual, ILike:
		return ident(c.Fields[0]) + " " + string(c.Op) + " " + b.arg(c.Value)
	case search:
		term, _ := c.Value.(string)
		if term == "" {
			return ""
		}
		p := b.arg("%" + EscapeLike(term) + "%")
		parts := make([]string, len(c.Fields))
		for i, f := range c.Fields {
			parts[i] = ident(f) + " ILIKE " + p
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}
	return ""
}

// ident quotes "column" or "table.column".
func ident(s string) string {
	return pgx.Identifier(strings.Split(s, ".")).Sanitize()
}

// EscapeLike escapes LIKE metacharacters so user input matches literally.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
