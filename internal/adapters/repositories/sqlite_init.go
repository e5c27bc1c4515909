package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite trip store schema.
func InitTripSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init trip schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init trip schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		cycle_used_hours REAL NOT NULL,
		route_json TEXT NOT NULL,
		summary_json TEXT NOT NULL
	);
	`

	createEntriesQuery := `
	CREATE TABLE IF NOT EXISTS trip_entries (
		trip_id TEXT NOT NULL REFERENCES trips(trip_id),
		ord INTEGER NOT NULL,
		status TEXT NOT NULL,
		start_at TEXT NOT NULL,
		end_at TEXT NOT NULL,
		miles_start REAL NOT NULL,
		miles_end REAL NOT NULL,
		note TEXT NOT NULL,
		PRIMARY KEY (trip_id, ord)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trip_entries_start
    ON trip_entries(trip_id, start_at);
	`

	statements := []string{
		createTripsQuery,
		createEntriesQuery,
		createIndexQuery,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init trip schema: exec statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init trip schema: commit: %w", err)
	}

	return nil
}
