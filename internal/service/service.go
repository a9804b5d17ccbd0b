// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the store layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sjlee-dev/public-calendar/internal/config"
	"github.com/sjlee-dev/public-calendar/internal/model"
	"github.com/sjlee-dev/public-calendar/internal/slot"
	"github.com/sjlee-dev/public-calendar/internal/store"
)

const (
	maxTitleLen    = 100
	maxLocationLen = 120
)

// ValidationError marks malformed client input. Handlers map it to a 400;
// it is never a system fault.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// EventService orchestrates event operations over a Store.
type EventService struct {
	store store.Store
	cfg   *config.Config
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(st store.Store, cfg *config.Config) *EventService {
	return &EventService{store: st, cfg: cfg}
}

// List returns calendar-display entries for the given status wire string.
// An empty status defaults to approved.
func (s *EventService) List(ctx context.Context, rawStatus string) ([]model.CalendarEntry, error) {
	rawStatus = strings.TrimSpace(rawStatus)
	if rawStatus == "" {
		rawStatus = model.StatusApproved.String()
	}
	status, err := model.ParseStatus(rawStatus)
	if err != nil {
		return nil, validationf("status must be pending or approved")
	}

	events, err := s.store.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	entries := make([]model.CalendarEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, toCalendarEntry(e))
	}
	return entries, nil
}

// toCalendarEntry reshapes a stored event into the widget display record.
func toCalendarEntry(e model.Event) model.CalendarEntry {
	entry := model.CalendarEntry{
		ID:    e.ID,
		Title: e.Title,
		ExtendedProps: model.ExtendedProps{
			Location:    e.Location,
			Description: e.Description,
			Status:      e.Status,
		},
	}
	if e.StartTime == nil {
		entry.Start = e.Date
		entry.AllDay = true
		return entry
	}
	end := e.StartTime
	if e.EndTime != nil {
		end = e.EndTime
	}
	entry.Start = e.Date + "T" + *e.StartTime + ":00"
	entry.End = e.Date + "T" + *end + ":00"
	return entry
}

// Create validates the request, resolves the timeslot, and inserts the
// event. The auto-approve flag is read from the shared config on every call,
// so reconfiguring a running process takes effect for the next request.
func (s *EventService) Create(ctx context.Context, req model.CreateRequest) (model.CreateResponse, error) {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date)); err != nil {
		return model.CreateResponse{}, validationf("date must be a valid YYYY-MM-DD date")
	}
	date := strings.TrimSpace(req.Date)

	resolved := slot.Resolve(req.Timeslot)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return model.CreateResponse{}, validationf("title or name is required")
		}
		title = slot.SynthesizeTitle(name, resolved.Label)
	}
	title = truncate(title, maxTitleLen)

	status := model.StatusPending
	if s.cfg.AutoApprove {
		status = model.StatusApproved
	}

	id, err := s.store.Create(ctx, model.NewEvent{
		Title:       title,
		Date:        date,
		StartTime:   resolved.Start,
		EndTime:     resolved.End,
		Location:    truncate(strings.TrimSpace(req.Location), maxLocationLen),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
	})
	if err != nil {
		return model.CreateResponse{}, fmt.Errorf("create event: %w", err)
	}
	return model.CreateResponse{OK: true, ID: id, Status: status}, nil
}

// Delete removes an event by id. A missing id surfaces store.ErrNotFound.
func (s *EventService) Delete(ctx context.Context, id int64) (model.DeleteResponse, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.DeleteResponse{}, store.ErrNotFound
		}
		return model.DeleteResponse{}, fmt.Errorf("delete event: %w", err)
	}
	return model.DeleteResponse{OK: true, ID: id}, nil
}

// truncate caps s at max runes without splitting multi-byte characters.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
