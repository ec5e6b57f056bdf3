// Package service contains the booking use cases: intake with the capacity
// policy, and the read models behind the activity and admin listings.  It
// depends only on small store interfaces so the SQL and MongoDB backends are
// interchangeable.
package service

import (
	"context"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/model"
	"github.com/iliyamo/outdoor-ventures/internal/queue"
)

type ActivityReader interface {
	ListActivities(ctx context.Context) ([]model.Activity, error)
	GetActivity(ctx context.Context, id string) (*model.Activity, error)
}

type BookingLister interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
}

// BookingWriter persists bookings.  Create stores the flag it is given;
// CreateChecked decides it atomically with the insert.
type BookingWriter interface {
	Create(ctx context.Context, b *model.Booking) error
	CreateChecked(ctx context.Context, b *model.Booking) (booking.Decision, error)
}

// EventPublisher is satisfied by *queue.Publisher.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// CacheInvalidator is satisfied by *middleware.CacheInvalidator.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}
