package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

// SQLite-backed trip store. The schedule is persisted as typed rows so
// individual days stay queryable; the route and summary ride along as
// JSON (opaque planning data, read back whole).
type SqliteTripRepository struct {
	DB *sql.DB
}

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Store a planned trip with its route, schedule and summary.
func (r *SqliteTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	if r.DB == nil {
		return errors.New("trip repository: db is nil")
	}
	if trip == nil || trip.ID == "" {
		return errors.New("save trip: trip with non-empty ID required")
	}

	routeJSON, err := json.Marshal(trip.Route)
	if err != nil {
		return fmt.Errorf("save trip: encode route: %w", err)
	}
	summaryJSON, err := json.Marshal(trip.Summary)
	if err != nil {
		return fmt.Errorf("save trip: encode summary: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO trips (trip_id, created_at, cycle_used_hours, route_json, summary_json)
    VALUES (?, ?, ?, ?, ?)
	`, trip.ID, trip.CreatedAt.UTC().Format(time.RFC3339), trip.CycleUsedHours, string(routeJSON), string(summaryJSON))
	if err != nil {
		return fmt.Errorf("save trip %q: insert trip row: %w", trip.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO trip_entries (trip_id, ord, status, start_at, end_at, miles_start, miles_end, note)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save trip %q: prepare entries: %w", trip.ID, err)
	}
	defer stmt.Close()

	for i, e := range trip.Entries {
		_, err := stmt.ExecContext(ctx,
			trip.ID, i, string(e.Status),
			e.Start.UTC().Format(time.RFC3339),
			e.End.UTC().Format(time.RFC3339),
			e.MilesStart, e.MilesEnd, e.Note,
		)
		if err != nil {
			return fmt.Errorf("save trip %q: insert entry %d: %w", trip.ID, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip %q: commit: %w", trip.ID, err)
	}

	return nil
}

// Load a previously planned trip by ID.
func (r *SqliteTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	if r.DB == nil {
		return nil, errors.New("trip repository: db is nil")
	}

	var (
		createdAt   string
		cycleHours  float64
		routeJSON   string
		summaryJSON string
	)
	row := r.DB.QueryRowContext(ctx, `
	SELECT created_at, cycle_used_hours, route_json, summary_json
    FROM trips
    WHERE trip_id = ?;
	`, id)
	if err := row.Scan(&createdAt, &cycleHours, &routeJSON, &summaryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrTripNotFound
		}
		return nil, fmt.Errorf("get trip %q: query trips table: %w", id, err)
	}

	trip := &domain.Trip{ID: id, CycleUsedHours: cycleHours}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("get trip %q: parse created_at: %w", id, err)
	}
	trip.CreatedAt = created

	if err := json.Unmarshal([]byte(routeJSON), &trip.Route); err != nil {
		return nil, fmt.Errorf("get trip %q: decode route: %w", id, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &trip.Summary); err != nil {
		return nil, fmt.Errorf("get trip %q: decode summary: %w", id, err)
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT status, start_at, end_at, miles_start, miles_end, note
    FROM trip_entries
    WHERE trip_id = ?
    ORDER BY ord;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get trip %q: query trip_entries table: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status   string
			startAt  string
			endAt    string
			miStart  float64
			miEnd    float64
			noteText string
		)
		if err := rows.Scan(&status, &startAt, &endAt, &miStart, &miEnd, &noteText); err != nil {
			return nil, fmt.Errorf("get trip %q: scan entry: %w", id, err)
		}

		parsedStatus, err := domain.ParseDutyStatus(status)
		if err != nil {
			return nil, fmt.Errorf("get trip %q: %w", id, err)
		}
		start, err := time.Parse(time.RFC3339, startAt)
		if err != nil {
			return nil, fmt.Errorf("get trip %q: parse entry start: %w", id, err)
		}
		end, err := time.Parse(time.RFC3339, endAt)
		if err != nil {
			return nil, fmt.Errorf("get trip %q: parse entry end: %w", id, err)
		}

		trip.Entries = append(trip.Entries, domain.ScheduleEntry{
			Status:     parsedStatus,
			Start:      start,
			End:        end,
			MilesStart: miStart,
			MilesEnd:   miEnd,
			Note:       noteText,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get trip %q: row iteration: %w", id, err)
	}

	return trip, nil
}
