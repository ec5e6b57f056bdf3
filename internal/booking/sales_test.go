package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-ventures/internal/model"
)

func salesFixture() []model.Booking {
	return []model.Booking{
		{ID: "b1", ActivityID: "x"},
		{ID: "b2", ActivityID: "x", IsWaitlisted: true},
		{ID: "b3", ActivityID: "x"},
		{ID: "b4", ActivityID: "y"},
		{ID: "b5", ActivityID: "y", IsWaitlisted: true},
		{ID: "b6", ActivityID: "x", IsWaitlisted: true},
	}
}

func TestSalesCountCountsOnlyConfirmedBookingsOfActivity(t *testing.T) {
	t.Parallel()

	bookings := salesFixture()
	assert.Equal(t, 2, SalesCount(bookings, "x"))
	assert.Equal(t, 1, SalesCount(bookings, "y"))
	assert.Equal(t, 0, SalesCount(bookings, "z"))
	assert.Equal(t, 0, SalesCount(nil, "x"))
}

func TestSalesIndexMatchesSalesCount(t *testing.T) {
	t.Parallel()

	bookings := salesFixture()
	idx := SalesIndex(bookings)
	for _, id := range []string{"x", "y", "z"} {
		assert.Equal(t, SalesCount(bookings, id), idx[id], "activity %s", id)
	}
}

func TestWithSalesAnnotatesActivities(t *testing.T) {
	t.Parallel()

	activities := []model.Activity{
		{ID: "x", Name: "Kayaking", PlaceLimit: 2, Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "y", Name: "Hiking", PlaceLimit: 5},
		{ID: "z", Name: "Climbing", PlaceLimit: 0},
	}

	got := WithSales(activities, salesFixture())
	require.Len(t, got, 3)

	assert.Equal(t, 2, got[0].Sales)
	assert.True(t, got[0].SoldOut)
	assert.Equal(t, 1, got[1].Sales)
	assert.False(t, got[1].SoldOut)
	assert.Equal(t, 0, got[2].Sales)
	assert.True(t, got[2].SoldOut)

	// input slice is left untouched
	assert.Zero(t, activities[0].Sales)
}
