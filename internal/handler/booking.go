package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-ventures/internal/model"
	"github.com/iliyamo/outdoor-ventures/internal/repository"
	"github.com/iliyamo/outdoor-ventures/internal/service"
)

const maxBookingBody = 1 << 20

// BookingCreator is satisfied by *service.BookingService.
type BookingCreator interface {
	CreateBooking(ctx context.Context, in service.CreateBookingInput) (*model.Booking, error)
}

// BookingHandler serves booking intake.
type BookingHandler struct {
	Bookings BookingCreator
}

// createBookingRequest is the body sent by the booking modal.  isWaitlisted
// is the client's view of capacity; it may be absent.
type createBookingRequest struct {
	Activity     string `json:"activity"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsWaitlisted *bool  `json:"isWaitlisted"`
}

// decodeCreateBooking reads exactly one JSON object from r.  Trailing data
// and a literal null are malformed.  The Content-Type header is ignored: the
// booking modal posts a JSON string without one.
func decodeCreateBooking(r io.Reader) (createBookingRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return createBookingRequest{}, fmt.Errorf("read booking request: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return createBookingRequest{}, errors.New("decode booking request: body is not a JSON object")
	}
	var req createBookingRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return createBookingRequest{}, fmt.Errorf("decode booking request: %w", err)
	}
	return req, nil
}

// CreateBooking handles POST /api/bookings.  Any other method gets 405 with an
// Allow header and nothing is stored.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	r := c.Request()
	if r.Method != http.MethodPost {
		c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
		return jsonError(c, http.StatusMethodNotAllowed, "method_not_allowed",
			fmt.Sprintf("Method %s not allowed", r.Method))
	}

	req, err := decodeCreateBooking(http.MaxBytesReader(c.Response(), r.Body, maxBookingBody))
	if err != nil {
		c.Logger().Errorf("create booking: %v", err)
		return jsonError(c, http.StatusInternalServerError, "internal_error", msgBookingFailed)
	}

	b, err := h.Bookings.CreateBooking(r.Context(), service.CreateBookingInput{
		ActivityID:   req.Activity,
		Name:         req.Name,
		Email:        req.Email,
		IsWaitlisted: req.IsWaitlisted,
	})
	switch {
	case errors.Is(err, service.ErrInvalidBooking):
		c.Logger().Warnf("create booking: %v", err)
		return jsonError(c, http.StatusBadRequest, "invalid_request", msgInvalidBooking)
	case errors.Is(err, repository.ErrActivityNotFound):
		return jsonError(c, http.StatusNotFound, "activity_not_found", msgActivityMissing)
	case err != nil:
		c.Logger().Errorf("create booking: %v", err)
		return jsonError(c, http.StatusInternalServerError, "internal_error", msgBookingFailed)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":      msgBookingCreated,
		"id":           b.ID,
		"isWaitlisted": b.IsWaitlisted,
	})
}
