package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/database"
	"github.com/iliyamo/outdoor-ventures/internal/model"
)

func newTestRepos(t *testing.T) (*ActivityRepo, *BookingRepo) {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, database.SQLite))
	return NewActivityRepo(db, database.SQLite), NewBookingRepo(db, database.SQLite)
}

var day = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func seedActivity(t *testing.T, r *ActivityRepo, id string, limit int) model.Activity {
	t.Helper()
	a := model.Activity{
		ID:         id,
		Name:       "Kayak " + id,
		ImageSrc:   "/img/" + id + ".jpg",
		ImageAlt:   "kayak",
		Date:       day,
		Price:      49.5,
		PlaceLimit: limit,
	}
	n, err := r.InsertActivities(context.Background(), []model.Activity{a})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	return a
}

func TestActivityRepo_ListAndGet(t *testing.T) {
	ctx := context.Background()
	activities, _ := newTestRepos(t)
	want := seedActivity(t, activities, "a1", 3)

	list, err := activities.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, want, list[0])

	got, err := activities.GetActivity(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	_, err = activities.GetActivity(ctx, "missing")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestActivityRepo_ListEmpty(t *testing.T) {
	activities, _ := newTestRepos(t)
	list, err := activities.ListActivities(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInsertActivities_SkipsExisting(t *testing.T) {
	activities, _ := newTestRepos(t)
	a := seedActivity(t, activities, "a1", 3)

	n, err := activities.InsertActivities(context.Background(), []model.Activity{a})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBookingRepo_CreateStoresFlagVerbatim(t *testing.T) {
	ctx := context.Background()
	activities, bookings := newTestRepos(t)
	seedActivity(t, activities, "a1", 0)

	b := model.Booking{ID: "b1", ActivityID: "a1", Name: "Ada", Email: "ada@example.com", CreatedAt: day.Add(time.Hour)}
	require.NoError(t, bookings.Create(ctx, &b))

	list, err := bookings.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b, list[0])
	assert.False(t, list[0].IsWaitlisted)
}

func TestBookingRepo_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	activities, bookings := newTestRepos(t)
	seedActivity(t, activities, "a1", 10)

	for i, id := range []string{"old", "new", "mid"} {
		offset := []time.Duration{time.Minute, 3 * time.Minute, 2 * time.Minute}[i]
		b := model.Booking{ID: id, ActivityID: "a1", Name: id, Email: id + "@example.com", CreatedAt: day.Add(offset)}
		require.NoError(t, bookings.Create(ctx, &b))
	}

	list, err := bookings.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
}

func TestBookingRepo_CreateChecked(t *testing.T) {
	ctx := context.Background()
	activities, bookings := newTestRepos(t)
	seedActivity(t, activities, "a1", 2)

	var decisions []booking.Decision
	for i, id := range []string{"b1", "b2", "b3"} {
		b := model.Booking{ID: id, ActivityID: "a1", Name: id, Email: id + "@example.com", CreatedAt: day.Add(time.Duration(i) * time.Minute)}
		d, err := bookings.CreateChecked(ctx, &b)
		require.NoError(t, err)
		assert.Equal(t, d.IsWaitlisted(), b.IsWaitlisted)
		decisions = append(decisions, d)
	}
	assert.Equal(t, []booking.Decision{booking.Confirmed, booking.Confirmed, booking.Waitlisted}, decisions)
}

func TestBookingRepo_CreateCheckedIgnoresWaitlistedInCount(t *testing.T) {
	ctx := context.Background()
	activities, bookings := newTestRepos(t)
	seedActivity(t, activities, "a1", 1)

	wl := model.Booking{ID: "w", ActivityID: "a1", Name: "w", Email: "w@example.com", IsWaitlisted: true, CreatedAt: day}
	require.NoError(t, bookings.Create(ctx, &wl))

	b := model.Booking{ID: "b", ActivityID: "a1", Name: "b", Email: "b@example.com", IsWaitlisted: true, CreatedAt: day.Add(time.Minute)}
	d, err := bookings.CreateChecked(ctx, &b)
	require.NoError(t, err)
	assert.Equal(t, booking.Confirmed, d)
	assert.False(t, b.IsWaitlisted)
}

func TestBookingRepo_CreateCheckedUnknownActivity(t *testing.T) {
	ctx := context.Background()
	_, bookings := newTestRepos(t)

	b := model.Booking{ID: "b", ActivityID: "nope", Name: "b", Email: "b@example.com", CreatedAt: day}
	_, err := bookings.CreateChecked(ctx, &b)
	assert.ErrorIs(t, err, ErrActivityNotFound)

	list, err := bookings.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookingRepo_CreateCheckedConcurrentLastPlaces(t *testing.T) {
	ctx := context.Background()
	activities, bookings := newTestRepos(t)
	seedActivity(t, activities, "a1", 3)

	const n = 12
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			b := model.Booking{ID: id, ActivityID: "a1", Name: id, Email: id + "@example.com", CreatedAt: day.Add(time.Duration(i) * time.Second)}
			_, err := bookings.CreateChecked(ctx, &b)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := bookings.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
	confirmed := 0
	for _, b := range list {
		if !b.IsWaitlisted {
			confirmed++
		}
	}
	assert.Equal(t, 3, confirmed)
}
