// Package model defines the core domain types for the public calendar service.
package model

import "fmt"

// Status is the approval state of an event.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// ParseStatus converts a wire string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func (s Status) String() string { return string(s) }

// Event is the sole persisted entity: one reserved time slot on one date.
// Date is an ISO YYYY-MM-DD string; StartTime/EndTime are HH:MM strings and
// are either both nil (all-day) or both set (timed).
type Event struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// AllDay reports whether the event has no concrete start time.
func (e *Event) AllDay() bool { return e.StartTime == nil }

// NewEvent carries the fields of an event about to be inserted.
// The store assigns ID and CreatedAt.
type NewEvent struct {
	Title       string
	Date        string
	StartTime   *string
	EndTime     *string
	Location    string
	Description string
	Status      Status
}

// CreateRequest is the parsed form payload for creating an event.
type CreateRequest struct {
	Title       string
	Name        string
	Date        string
	Timeslot    string
	Location    string
	Description string
}

// CreateResponse is returned by a successful create.
type CreateResponse struct {
	OK     bool   `json:"ok"`
	ID     int64  `json:"id"`
	Status Status `json:"status"`
}

// DeleteResponse is returned by a successful delete.
type DeleteResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

// CalendarEntry is the display shape consumed by the calendar widget.
// Timed events carry Start/End instants ("YYYY-MM-DDTHH:MM:SS"); all-day
// events carry the bare date in Start with AllDay set and End omitted.
type CalendarEntry struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Start         string        `json:"start"`
	End           string        `json:"end,omitempty"`
	AllDay        bool          `json:"allDay,omitempty"`
	ExtendedProps ExtendedProps `json:"extendedProps"`
}

// ExtendedProps carries descriptive metadata that the calendar widget does
// not render on the event block itself.
type ExtendedProps struct {
	Location    string `json:"location"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
