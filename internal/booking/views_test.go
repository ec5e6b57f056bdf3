package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-ventures/internal/model"
)

func TestParseViewMode(t *testing.T) {
	t.Parallel()

	cases := map[string]ViewMode{
		"":             ViewConfirmed,
		"confirmed":    ViewConfirmed,
		"bookings":     ViewConfirmed,
		"nonsense":     ViewConfirmed,
		"waitlist":     ViewWaitlist,
		"Waiting-List": ViewWaitlist,
		" all ":        ViewAll,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseViewMode(in), "input %q", in)
	}
}

func TestBuildViewFiltersAndOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	activities := []model.Activity{{ID: "a", Name: "Rafting", PlaceLimit: 10}}
	bookings := []model.Booking{
		{ID: "first", ActivityID: "a", IsWaitlisted: false, CreatedAt: base},
		{ID: "second", ActivityID: "a", IsWaitlisted: true, CreatedAt: base.Add(time.Minute)},
		{ID: "third", ActivityID: "a", IsWaitlisted: false, CreatedAt: base.Add(2 * time.Minute)},
	}

	waitlist := BuildView(bookings, activities, ViewWaitlist)
	require.Len(t, waitlist, 1)
	assert.Equal(t, "second", waitlist[0].ID)

	confirmed := BuildView(bookings, activities, ViewConfirmed)
	require.Len(t, confirmed, 2)
	assert.Equal(t, "third", confirmed[0].ID)
	assert.Equal(t, "first", confirmed[1].ID)
	require.NotNil(t, confirmed[0].Activity)
	assert.Equal(t, "Rafting", confirmed[0].Activity.Name)

	all := BuildView(bookings, activities, ViewAll)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"third", "second", "first"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func TestBuildViewKeepsBookingsWithMissingActivity(t *testing.T) {
	t.Parallel()

	bookings := []model.Booking{
		{ID: "orphan", ActivityID: "deleted", CreatedAt: time.Now()},
	}

	got := BuildView(bookings, nil, ViewConfirmed)
	require.Len(t, got, 1)
	assert.Equal(t, "orphan", got[0].ID)
	assert.Nil(t, got[0].Activity)
}

func TestBuildViewEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	got := BuildView(nil, nil, ViewWaitlist)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
