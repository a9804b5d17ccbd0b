package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjlee-dev/public-calendar/internal/config"
	"github.com/sjlee-dev/public-calendar/internal/model"
	"github.com/sjlee-dev/public-calendar/internal/store"
)

// fakeStore is an in-memory Store mirroring the ordering rules of the real
// backends.
type fakeStore struct {
	nextID int64
	events []model.Event
	failed error
}

func (f *fakeStore) List(_ context.Context, status model.Status) ([]model.Event, error) {
	if f.failed != nil {
		return nil, f.failed
	}
	var out []model.Event
	for _, e := range f.events {
		if e.Status == status {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return startOrMidnight(out[i]) < startOrMidnight(out[j])
	})
	return out, nil
}

func startOrMidnight(e model.Event) string {
	if e.StartTime == nil {
		return "00:00"
	}
	return *e.StartTime
}

func (f *fakeStore) Create(_ context.Context, ev model.NewEvent) (int64, error) {
	if f.failed != nil {
		return 0, f.failed
	}
	f.nextID++
	f.events = append(f.events, model.Event{
		ID:          f.nextID,
		Title:       ev.Title,
		Date:        ev.Date,
		StartTime:   ev.StartTime,
		EndTime:     ev.EndTime,
		Location:    ev.Location,
		Description: ev.Description,
		Status:      ev.Status,
		CreatedAt:   "2025-01-01T00:00:00Z",
	})
	return f.nextID, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeStore) Close() {}

func newTestService(autoApprove bool) (*EventService, *fakeStore, *config.Config) {
	st := &fakeStore{}
	cfg := &config.Config{AutoApprove: autoApprove}
	return NewEventService(st, cfg), st, cfg
}

func TestCreateListRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	resp, err := svc.Create(ctx, model.CreateRequest{
		Name:     "Kim",
		Date:     "2025-03-10",
		Timeslot: "오후",
	})
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, model.StatusApproved, resp.Status)

	entries, err := svc.List(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, resp.ID, e.ID)
	assert.Equal(t, "Kim (오후)", e.Title)
	assert.Equal(t, "2025-03-10T13:00:00", e.Start)
	assert.Equal(t, "2025-03-10T18:00:00", e.End)
	assert.False(t, e.AllDay)
	assert.Equal(t, model.StatusApproved, e.ExtendedProps.Status)
}

func TestCreateAllDayListsAsBareDate(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateRequest{
		Title:    "정기 점검",
		Date:     "2025-03-10",
		Timeslot: "하루종일",
	})
	require.NoError(t, err)

	entries, err := svc.List(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-03-10", entries[0].Start)
	assert.True(t, entries[0].AllDay)
	assert.Empty(t, entries[0].End)
}

func TestCreateInvalidDateInsertsNothing(t *testing.T) {
	svc, st, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateRequest{Title: "bad", Date: "2025-13-40"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, st.events)

	_, err = svc.Create(ctx, model.CreateRequest{Title: "bad", Date: "10.03.2025"})
	assert.True(t, IsValidation(err))
	assert.Empty(t, st.events)
}

func TestCreateRequiresTitleOrName(t *testing.T) {
	svc, st, _ := newTestService(true)

	_, err := svc.Create(context.Background(), model.CreateRequest{Date: "2025-03-10"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, st.events)
}

func TestCreateTruncatesLongTitle(t *testing.T) {
	svc, st, _ := newTestService(true)

	long := make([]rune, 140)
	for i := range long {
		long[i] = '가'
	}
	_, err := svc.Create(context.Background(), model.CreateRequest{
		Title: string(long),
		Date:  "2025-03-10",
	})
	require.NoError(t, err)
	assert.Len(t, []rune(st.events[0].Title), 100)
}

func TestCreateReadsAutoApprovePerCall(t *testing.T) {
	svc, _, cfg := newTestService(false)
	ctx := context.Background()

	resp, err := svc.Create(ctx, model.CreateRequest{Title: "first", Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, resp.Status)

	// Flipping the shared config changes behavior for the next create.
	cfg.AutoApprove = true
	resp, err = svc.Create(ctx, model.CreateRequest{Title: "second", Date: "2025-03-10"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, resp.Status)
}

func TestListDefaultsToApprovedAndFilters(t *testing.T) {
	svc, _, cfg := newTestService(true)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateRequest{Title: "visible", Date: "2025-03-10"})
	require.NoError(t, err)
	cfg.AutoApprove = false
	_, err = svc.Create(ctx, model.CreateRequest{Title: "hidden", Date: "2025-03-10"})
	require.NoError(t, err)

	entries, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0].Title)

	pending, err := svc.List(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "hidden", pending[0].Title)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(true)

	_, err := svc.List(context.Background(), "archived")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestListOrdersNullStartFirst(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.CreateRequest{Title: "afternoon", Date: "2025-03-10", Timeslot: "오후"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateRequest{Title: "all day", Date: "2025-03-10", Timeslot: "하루종일"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.CreateRequest{Title: "earlier date", Date: "2025-03-01", Timeslot: "오후"})
	require.NoError(t, err)

	entries, err := svc.List(ctx, "approved")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "earlier date", entries[0].Title)
	assert.Equal(t, "all day", entries[1].Title)
	assert.Equal(t, "afternoon", entries[2].Title)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService(true)
	ctx := context.Background()

	resp, err := svc.Create(ctx, model.CreateRequest{Title: "doomed", Date: "2025-03-10"})
	require.NoError(t, err)

	del, err := svc.Delete(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, del.OK)
	assert.Equal(t, resp.ID, del.ID)

	_, err = svc.Delete(ctx, resp.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Delete(ctx, 99999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreFaultIsNotValidation(t *testing.T) {
	svc, st, _ := newTestService(true)
	st.failed = errors.New("connection refused")

	_, err := svc.List(context.Background(), "approved")
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	_, err = svc.Create(context.Background(), model.CreateRequest{Title: "x", Date: "2025-03-10"})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}
