package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sjlee-dev/public-calendar/internal/model"
)

const pgSchemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id BIGSERIAL PRIMARY KEY,
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

// Rows are ordered with a sentinel midnight for null starts so all-day
// events surface before timed ones on the same date.
const pgListSQL = `
SELECT id, title, date, start_time, end_time, location, description, status, created_at
FROM events
WHERE status = $1
ORDER BY date, COALESCE(start_time, '00:00')
`

const pgInsertSQL = `
INSERT INTO events (title, date, start_time, end_time, location, description, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id
`

// PostgresStore persists events in PostgreSQL via a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL, ensures the events table exists, and
// returns the store.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// Pool defaults for a small service.
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, pgSchemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() { s.pool.Close() }

// List returns all events with the given status in calendar order.
func (s *PostgresStore) List(ctx context.Context, status model.Status) ([]model.Event, error) {
	rows, err := s.pool.Query(ctx, pgListSQL, status.String())
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
func (s *PostgresStore) Create(ctx context.Context, ev model.NewEvent) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, pgInsertSQL,
		ev.Title, ev.Date, ev.StartTime, ev.EndTime,
		ev.Location, ev.Description, ev.Status.String(), nowUTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

// Delete removes the event with the given id, or returns ErrNotFound.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
