package model

import "time"

// Booking ties a person to an activity.  A booking is either confirmed or
// on the waiting list and is immutable once stored.
type Booking struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ActivityID   string    `json:"activityId"`
	IsWaitlisted bool      `json:"isWaitlisted"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookingView is a booking joined to its activity for the admin listing.
// Activity is nil when the referenced activity no longer exists.
type BookingView struct {
	Booking
	Activity *Activity `json:"activity"`
}
