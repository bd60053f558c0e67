// Package db opens the database/sql connection the planner's SQLite
// fallback path needs. The Postgres path goes through pgxpool
// directly (internal/adapters/repositories.NewPgPlanRepository) and does
// not use this package.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (and pings) a modernc.org/sqlite database at path,
// adapted from the teacher's cmd/server/main.go openDB helper.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: open %q: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("open sqlite: verify connection to %q: %w", path, err)
	}

	return db, nil
}
