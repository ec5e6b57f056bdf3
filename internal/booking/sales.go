package booking

import "github.com/iliyamo/outdoor-ventures/internal/model"

// SalesCount returns the number of confirmed bookings that reference
// activityID.  Waitlisted bookings never count against capacity.
func SalesCount(bookings []model.Booking, activityID string) int {
	n := 0
	for _, b := range bookings {
		if b.ActivityID == activityID && !b.IsWaitlisted {
			n++
		}
	}
	return n
}

// SalesIndex counts confirmed bookings per activity in a single pass.
// Activities without confirmed bookings are absent from the map, which
// reads as zero.
func SalesIndex(bookings []model.Booking) map[string]int {
	idx := make(map[string]int)
	for _, b := range bookings {
		if b.IsWaitlisted {
			continue
		}
		idx[b.ActivityID]++
	}
	return idx
}

// WithSales returns a copy of activities annotated with their current sales
// count and the display-time capacity decision.
func WithSales(activities []model.Activity, bookings []model.Booking) []model.Activity {
	idx := SalesIndex(bookings)
	out := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		a.Sales = idx[a.ID]
		a.SoldOut = Decide(a.PlaceLimit, a.Sales).IsWaitlisted()
		out = append(out, a)
	}
	return out
}
