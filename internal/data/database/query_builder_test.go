package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("users"))

	assert.Equal(t, `SELECT * FROM "users"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("menus",
		WithColumns("id", "title", "menus.template_id"),
	))

	assert.Equal(t, `SELECT "id", "title", "menus"."template_id" FROM "menus"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_CountOnlyIgnoresPaging(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("forms",
		WithCountOnly(),
		WithCondition(WhereCond("status", Equal, "new")),
		WithOrderBy("created_at", "desc"),
		WithLimit(10),
	))

	assert.Equal(t, `SELECT COUNT(*) FROM "forms" WHERE "status" = $1`, query)
	assert.Equal(t, []any{"new"}, args)
}

func TestBuildListQuery_ConditionsAndPaging(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("users",
		WithCondition(WhereCond("role", Equal, "admin")),
		WithCondition(WhereCond("status", NotEqual, "inactive")),
		WithOrderBy("created_at", "desc"),
		WithLimit(20),
		WithOffset(40),
	))

	assert.Equal(t,
		`SELECT * FROM "users" WHERE "role" = $1 AND "status" <> $2 ORDER BY "created_at" DESC LIMIT $3 OFFSET $4`,
		query)
	assert.Equal(t, []any{"admin", "inactive", 20, 40}, args)
}

func TestBuildListQuery_Search(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("users",
		WithCondition(WhereSearch(" jo_e ", "username", "email", "name")),
		WithLimit(5),
	))

	assert.Equal(t,
		`SELECT * FROM "users" WHERE ("username" ILIKE $1 OR "email" ILIKE $1 OR "name" ILIKE $1) LIMIT $2`,
		query)
	assert.Equal(t, []any{`%jo\_e%`, 5}, args)
}

func TestBuildListQuery_EmptySearchSkipped(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("templates",
		WithCondition(WhereSearch("   ", "title")),
		WithCondition(WhereCond("", Equal, "x")),
	))

	assert.Equal(t, `SELECT * FROM "templates"`, query)
	assert.Empty(t, args)
}

func TestBuildListQuery_SearchAfterEquality(t *testing.T) {
	query, args := BuildListQuery(NewListQueryOptions("forms",
		WithCondition(WhereCond("status", Equal, "read")),
		WithCondition(WhereSearch("100%", "name")),
		WithOffset(0),
	))

	assert.Equal(t, `SELECT * FROM "forms" WHERE "status" = $1 AND ("name" ILIKE $2) OFFSET $3`, query)
	assert.Equal(t, []any{"read", `%100\%%`, 0}, args)
}

func TestBuildListQuery_InvalidDirectionDropped(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions("menus", WithOrderBy("title", "sideways")))
	assert.Equal(t, `SELECT * FROM "menus" ORDER BY "title"`, query)
}

func TestBuildListQuery_IdentifierInjection(t *testing.T) {
	query, _ := BuildListQuery(NewListQueryOptions(`users"; DROP TABLE users; --`))
	assert.Equal(t, `SELECT * FROM "users""; DROP TABLE users; --"`, query)
}

func TestBuildListQuery_Nil(t *testing.T) {
	query, args := BuildListQuery(nil)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, EscapeLike(`50% off_now\`))
}
