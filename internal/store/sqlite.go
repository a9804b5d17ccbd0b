package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sjlee-dev/public-calendar/internal/model"
)

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT,
	end_time TEXT,
	location TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'approved',
	created_at TEXT NOT NULL
)
`

const sqliteListSQL = `
SELECT id, title, date, start_time, end_time, location, description, status, created_at
FROM events
WHERE status = ?
ORDER BY date, COALESCE(start_time, '00:00')
`

const sqliteInsertSQL = `
INSERT INTO events (title, date, start_time, end_time, location, description, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// SQLiteStore persists events in an embedded sqlite database file. The
// driver is modernc.org/sqlite, so no cgo is involved and a bare binary can
// run against a local file with no server at all.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database file at path and ensures the
// events table exists.
func NewSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// A single writer keeps sqlite's whole-database locking out of the way.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() { _ = s.db.Close() }

// List returns all events with the given status in calendar order.
func (s *SQLiteStore) List(ctx context.Context, status model.Status) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx, sqliteListSQL, status.String())
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var (
			e      model.Event
			status string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.StartTime, &e.EndTime,
			&e.Location, &e.Description, &status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Status = model.Status(status)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Create inserts a new event and returns its server-assigned id.
func (s *SQLiteStore) Create(ctx context.Context, ev model.NewEvent) (int64, error) {
	res, err := s.db.ExecContext(ctx, sqliteInsertSQL,
		ev.Title, ev.Date, ev.StartTime, ev.EndTime,
		ev.Location, ev.Description, ev.Status.String(), nowUTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// Delete removes the event with the given id, or returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
