package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/target/admin-panel/config"
	"github.com/target/admin-panel/internal/migrate"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Integration tests skip when Postgres or Redis is unreachable, unless
// TEST_REQUIRE_INFRA (or the per-backend TEST_REQUIRE_DB / TEST_REQUIRE_REDIS)
// is truthy, in which case they fail.
const pingTimeout = 2 * time.Second

// TestDBConfig reads the integration database settings from TEST_DB_*,
// with the same variables and defaults as the server's DB_*.
func TestDBConfig() (config.DBConfig, error) {
	var cfg config.DBConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TEST_DB_"}); err != nil {
		return config.DBConfig{}, fmt.Errorf("parse TEST_DB_* env: %w", err)
	}
	return cfg, nil
}

// SkipIfNoTestDB skips (or fails, see TEST_REQUIRE_DB) when the test database is unreachable.
func SkipIfNoTestDB(t testing.TB) {
	t.Helper()
	cfg, err := TestDBConfig()
	if err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("pgx", cfg.DSN())
	if err == nil {
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		err = db.PingContext(ctx)
	}
	if err != nil {
		unavailable(t, "TEST_REQUIRE_DB", "postgres", err)
	}
}

// WithAutoDB runs fn against a migrated, throwaway schema that is dropped when the test ends.
func WithAutoDB(t testing.TB, fn func(*sql.DB)) {
	t.Helper()
	fn(SetupSchemaDB(t))
}

// SetupSchemaDB creates a uniquely named schema, opens a pool whose
// search_path points at it and applies the migrations there.
func SetupSchemaDB(t testing.TB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)
	cfg, err := TestDBConfig()
	if err != nil {
		t.Fatal(err)
	}

	admin, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		t.Fatalf("open admin db: %v", err)
	}
	schema := schemaName()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	cfg.SearchPath = schema + ",public"
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		admin.Close()
		t.Fatalf("open schema db: %v", err)
	}
	db.SetMaxOpenConns(10)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(); err != nil {
			t.Logf("close schema db: %v", err)
		}
		if _, err := admin.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		if err := admin.Close(); err != nil {
			t.Logf("close admin db: %v", err)
		}
	})

	if err := migrate.Run(ctx, db); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}
	return db
}

func schemaName() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

// SetupTestRedis returns a client on an empty Redis logical database.
// TEST_REDIS_ADDR defaults to localhost:6379. TEST_REDIS_DB pins the database
// index; otherwise one of 1..15 is reserved through a lock key in DB 0 so
// parallel packages do not flush each other's data.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	meta := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = meta.Close() })
	if err := meta.Ping(ctx).Err(); err != nil {
		unavailable(t, "TEST_REQUIRE_REDIS", "redis at "+addr, err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: reserveRedisDB(t, meta)})
	t.Cleanup(func() { _ = client.Close() })
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush redis test db: %v", err)
	}
	return client
}

func reserveRedisDB(t testing.TB, meta *redis.Client) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			t.Fatalf("invalid TEST_REDIS_DB %q", v)
		}
		return n
	}
	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for n := 1; n <= 15; n++ {
		key := "adminpanel:testutil:db:" + strconv.Itoa(n)
		ok, err := meta.SetNX(context.Background(), key, owner, 30*time.Minute).Result()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() { meta.Del(context.Background(), key) })
		return n
	}
	t.Logf("no free redis db, sharing db 1")
	return 1
}

func unavailable(t testing.TB, requireVar, what string, err error) {
	t.Helper()
	if envBool(requireVar) || envBool("TEST_REQUIRE_INFRA") {
		t.Fatalf("%s unavailable: %v", what, err)
	}
	t.Skipf("%s unavailable: %v", what, err)
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
