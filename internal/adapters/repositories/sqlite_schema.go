package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSQLiteSchema creates the solved_plans table on a modernc.org/sqlite
// database, for local/offline runs with no Postgres available. Adapted
// from the teacher's InitSchema: same begin/exec-statements/commit shape,
// one table instead of three (plans are solved on the fly, nothing else
// needs a persistent cache table once geography is a static table, see
// DESIGN.md).
func InitSQLiteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init sqlite schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init sqlite schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSolvedPlansQuery := `
	CREATE TABLE IF NOT EXISTS solved_plans (
		key TEXT PRIMARY KEY,
		solved_at DATETIME NOT NULL,
		route_count INTEGER NOT NULL,
		total_nm REAL NOT NULL,
		plan_json TEXT NOT NULL
	);
	`

	if _, err := tx.Exec(createSolvedPlansQuery); err != nil {
		return fmt.Errorf("init sqlite schema: exec create table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init sqlite schema: commit tx: %w", err)
	}

	return nil
}
