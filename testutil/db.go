// Package testutil provides shared helpers for integration tests.
// Helpers in this package skip automatically when no test database is
// available, so unit tests can run without a running Postgres.
//
// A database is available when TEST_DATABASE_URL is set, or when
// TEST_CONTAINERS=1 and a package's TestMain has called SetupDatabase to start
// a throwaway Postgres container.
package testutil

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/xxayder/NFC-Check/migrations"
)

// dsnEnv is the environment variable holding the integration-test DSN.
const dsnEnv = "TEST_DATABASE_URL"

// NewPool opens a *pgxpool.Pool connected to the test database.
//
// The test is skipped automatically if no test database is configured, so
// integration tests are opt-in and never break CI environments that lack a DB.
// The pool is closed automatically when the test (and all its subtests) finish.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := requireDSN(t)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB opens a *sql.DB connected to the test database using the pgx
// database/sql driver. Use this when driving goose migrations in tests.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := requireDSN(t)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB opens a *sql.DB for the given DSN and panics on any error.
// Use this in TestMain functions where no *testing.T is available.
// Callers are responsible for closing the returned *sql.DB.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: open: " + err.Error())
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		panic("testutil.MustOpenSQLDB: ping: " + err.Error())
	}
	return db
}

// SetupDatabase prepares the test database for a package's TestMain and
// returns a cleanup function to run after m.Run.
//
// When TEST_CONTAINERS=1 and TEST_DATABASE_URL is unset, a Postgres container
// is started and TEST_DATABASE_URL is pointed at it. When a database is
// available, all migrations are applied. When none is, it does nothing and
// the helpers above skip.
func SetupDatabase() func() {
	cleanup := func() {}

	if os.Getenv(dsnEnv) == "" && os.Getenv("TEST_CONTAINERS") == "1" {
		dsn, terminate, err := StartPostgres(context.Background())
		if err != nil {
			log.Fatalf("testutil.SetupDatabase: %v", err)
		}
		os.Setenv(dsnEnv, dsn)
		cleanup = terminate
	}

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		return cleanup
	}

	// goose needs database/sql, not a pgx pool.
	db := MustOpenSQLDB(dsn)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		cleanup()
		log.Fatalf("testutil.SetupDatabase: create goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		cleanup()
		log.Fatalf("testutil.SetupDatabase: run migrations: %v", err)
	}

	return cleanup
}

// requireDSN returns the test database DSN, skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
