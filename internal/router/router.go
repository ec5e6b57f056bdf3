package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-ventures/internal/handler"
)

// RegisterRoutes registers the health check used by load balancers and
// monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBookings registers booking intake.  The route accepts every method
// so the handler can answer non-POST requests with 405 and an Allow header.
// mw typically holds the rate limiter.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, mw ...echo.MiddlewareFunc) {
	e.Any("/api/bookings", h.CreateBooking, mw...)
}

// RegisterListings registers the read-only listings behind the home page and
// the admin page.  mw typically holds the response cache.
func RegisterListings(e *echo.Echo, h *handler.ListingHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/api/activities", h.ListActivities, mw...)
	e.GET("/api/admin/bookings", h.ListBookings, mw...)
}
