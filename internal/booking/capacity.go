// Package booking holds the booking rules shared by the intake path and the
// read paths: the capacity policy, the sales aggregator and the admin views.
// Everything here is pure and works on already loaded records.
package booking

// Decision is the outcome of the capacity policy for a new booking.
type Decision string

const (
	Confirmed  Decision = "confirmed"
	Waitlisted Decision = "waitlisted"
)

// Decide returns Confirmed while sales is strictly below placeLimit and
// Waitlisted otherwise.  A place limit of zero (or less) waitlists every
// booking.
func Decide(placeLimit, sales int) Decision {
	if sales < placeLimit {
		return Confirmed
	}
	return Waitlisted
}

// IsWaitlisted reports whether the decision puts the booking on the waiting list.
func (d Decision) IsWaitlisted() bool {
	return d == Waitlisted
}
