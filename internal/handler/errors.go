// Package handler exposes the HTTP handlers for booking intake and the
// activity and admin listings.
package handler

import "github.com/labstack/echo/v4"

// Client-facing messages.  Error details stay in the server log.
const (
	msgBookingCreated  = "Booking created"
	msgBookingFailed   = "Error creating booking"
	msgInvalidBooking  = "Invalid booking request"
	msgActivityMissing = "Activity not found"
)

func jsonError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, echo.Map{"error": code, "message": message})
}
