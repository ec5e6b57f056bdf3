package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/model"
)

// ListingReader is satisfied by *service.ListingService.
type ListingReader interface {
	ActivitiesWithSales(ctx context.Context) ([]model.Activity, error)
	BookingViews(ctx context.Context, mode booking.ViewMode) ([]model.BookingView, error)
}

// ListingHandler serves the home page and admin page listings.  A failed
// read is logged and answered with an empty list rather than an error, and
// the degraded response is marked no-store so it is not cached.
type ListingHandler struct {
	Listings ListingReader
}

// ListActivities handles GET /api/activities.
func (h *ListingHandler) ListActivities(c echo.Context) error {
	items, err := h.Listings.ActivitiesWithSales(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list activities: %v", err)
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		items = []model.Activity{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListBookings handles GET /api/admin/bookings?view=confirmed|waitlist|all.
func (h *ListingHandler) ListBookings(c echo.Context) error {
	mode := booking.ParseViewMode(c.QueryParam("view"))
	items, err := h.Listings.BookingViews(c.Request().Context(), mode)
	if err != nil {
		c.Logger().Errorf("list bookings (%s): %v", mode, err)
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
		items = []model.BookingView{}
	}
	return c.JSON(http.StatusOK, echo.Map{"view": mode, "items": items})
}
