// Package db provides the optional results store behind --db-url.
//
// Supports SQLite (local runs) and PostgreSQL (shared result collection)
// via sqlx. The store has a single writer that flushes once at the end of
// a run, so connection handling is sized for a short-lived batch process,
// not for request concurrency. Named queries are embedded alongside the
// store; schema migrations live in the top-level migrations package.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// driverFor resolves a results-store URL to a database/sql driver name
// and DSN. SQLite "URLs" are plain path carriers (sqlite://results.db,
// sqlite:///var/lib/results.db), so the prefix is stripped rather than
// URL-parsed; postgres URLs are passed to lib/pq untouched.
func driverFor(dbURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(dbURL, "sqlite://"):
		path := strings.TrimPrefix(dbURL, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite URL %q has no path", dbURL)
		}
		return "sqlite3", path, nil
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return "postgres", dbURL, nil
	}
	return "", "", fmt.Errorf("unsupported database URL %q (expected sqlite:// or postgres://)", dbURL)
}

// Open connects to the results store and verifies the connection. The
// pool stays minimal: one run writes its results from one goroutine, and
// the process exits shortly after, so idle connections have nothing to
// amortize.
func Open(dbURL string) (*sqlx.DB, error) {
	driver, dsn, err := driverFor(dbURL)
	if err != nil {
		return nil, err
	}

	database, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s store: %w", driver, err)
	}

	database.SetMaxOpenConns(2)
	database.SetMaxIdleConns(1)
	database.SetConnMaxIdleTime(time.Minute)

	return database, nil
}
