// Package store implements event persistence. Two backends satisfy the same
// Store interface: a networked PostgreSQL store on pgx and an embedded
// sqlite store, selected by configuration. Both keep dates and clock times
// as the opaque strings the rest of the service uses.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sjlee-dev/public-calendar/internal/model"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// Store is the persistence contract shared by both backends.
//
// List returns events with the given status ordered by date ascending, then
// start time ascending with all-day events (null start) first within a date.
// Create inserts a row, assigning id and created_at, and returns the new id.
// Delete removes a row by id and returns ErrNotFound when nothing matched;
// repeated deletes of the same id are not silently idempotent.
type Store interface {
	List(ctx context.Context, status model.Status) ([]model.Event, error)
	Create(ctx context.Context, ev model.NewEvent) (int64, error)
	Delete(ctx context.Context, id int64) error
	Close()
}

// nowUTC is the created_at stamp: ISO-8601 in UTC, second precision.
func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z07:00")
}
