// Package queue defines message payloads exchanged over the message broker
// and the publisher and consumer that move them.
package queue

// BookingCreatedQueue is the durable queue booking events are routed to.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking has been stored.  It
// carries enough information for the notification consumer to tell the
// customer whether they got a place or joined the waiting list without
// querying the primary database.
type BookingCreatedEvent struct {
	BookingID    string `json:"booking_id"`
	ActivityID   string `json:"activity_id"`
	ActivityName string `json:"activity_name"`
	ActivityDate string `json:"activity_date"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsWaitlisted bool   `json:"is_waitlisted"`
	CreatedAt    string `json:"created_at"`
}
