package booking

import (
	"sort"
	"strings"

	"github.com/iliyamo/outdoor-ventures/internal/model"
)

// ViewMode selects which bookings the admin listing shows.
type ViewMode string

const (
	ViewConfirmed ViewMode = "confirmed"
	ViewWaitlist  ViewMode = "waitlist"
	ViewAll       ViewMode = "all"
)

// ParseViewMode maps a query value to a ViewMode.  Empty and unknown values
// select the confirmed view, which is the admin page default tab.
func ParseViewMode(s string) ViewMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "waitlist", "waiting-list", "waiting_list", "waitinglist":
		return ViewWaitlist
	case "all":
		return ViewAll
	default:
		return ViewConfirmed
	}
}

// Includes reports whether b belongs in the view.
func (m ViewMode) Includes(b model.Booking) bool {
	switch m {
	case ViewAll:
		return true
	case ViewWaitlist:
		return b.IsWaitlisted
	default:
		return !b.IsWaitlisted
	}
}

// BuildView joins bookings to their activities, keeps the ones selected by
// mode and orders them newest first.  Bookings whose activity cannot be
// resolved are kept with a nil Activity.  The result is never nil.
func BuildView(bookings []model.Booking, activities []model.Activity, mode ViewMode) []model.BookingView {
	byID := make(map[string]model.Activity, len(activities))
	for _, a := range activities {
		byID[a.ID] = a
	}

	out := make([]model.BookingView, 0, len(bookings))
	for _, b := range bookings {
		if !mode.Includes(b) {
			continue
		}
		v := model.BookingView{Booking: b}
		if a, ok := byID[b.ActivityID]; ok {
			a := a
			v.Activity = &a
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
