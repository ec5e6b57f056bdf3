package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/model"
)

// ListingService builds the read models for the home page and the admin
// page.  Sales are recomputed from the bookings on every call.
type ListingService struct {
	activities ActivityReader
	bookings   BookingLister
}

func NewListingService(activities ActivityReader, bookings BookingLister) *ListingService {
	return &ListingService{activities: activities, bookings: bookings}
}

// ActivitiesWithSales returns every activity with Sales and SoldOut filled in.
func (s *ListingService) ActivitiesWithSales(ctx context.Context) ([]model.Activity, error) {
	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return booking.WithSales(activities, bookings), nil
}

// BookingViews returns the admin listing for mode, newest first.
func (s *ListingService) BookingViews(ctx context.Context, mode booking.ViewMode) ([]model.BookingView, error) {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return booking.BuildView(bookings, activities, mode), nil
}
