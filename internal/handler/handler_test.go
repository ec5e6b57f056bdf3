package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/model"
	"github.com/iliyamo/outdoor-ventures/internal/repository"
	"github.com/iliyamo/outdoor-ventures/internal/service"
)

type stubCreator struct {
	calls []service.CreateBookingInput
	out   *model.Booking
	err   error
}

func (s *stubCreator) CreateBooking(ctx context.Context, in service.CreateBookingInput) (*model.Booking, error) {
	s.calls = append(s.calls, in)
	return s.out, s.err
}

func doBooking(t *testing.T, h *BookingHandler, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateBooking(e.NewContext(req, rec)))
	return rec
}

func TestCreateBooking_Created(t *testing.T) {
	stub := &stubCreator{out: &model.Booking{ID: "b1", IsWaitlisted: true}}
	h := &BookingHandler{Bookings: stub}

	rec := doBooking(t, h, http.MethodPost, `{"activity":"a1","name":"Ada","email":"ada@example.com","isWaitlisted":false}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"message":"Booking created","id":"b1","isWaitlisted":true}`, rec.Body.String())
	require.Len(t, stub.calls, 1)
	assert.Equal(t, "a1", stub.calls[0].ActivityID)
	require.NotNil(t, stub.calls[0].IsWaitlisted)
	assert.False(t, *stub.calls[0].IsWaitlisted)
}

func TestCreateBooking_AbsentHint(t *testing.T) {
	stub := &stubCreator{out: &model.Booking{ID: "b1"}}
	rec := doBooking(t, &BookingHandler{Bookings: stub}, http.MethodPost, `{"activity":"a1","name":"Ada","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, stub.calls, 1)
	assert.Nil(t, stub.calls[0].IsWaitlisted)
}

func TestCreateBooking_MethodNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			stub := &stubCreator{}
			rec := doBooking(t, &BookingHandler{Bookings: stub}, method, `{"activity":"a1"}`)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "POST", rec.Header().Get("Allow"))
			assert.JSONEq(t, fmt.Sprintf(`{"error":"method_not_allowed","message":"Method %s not allowed"}`, method), rec.Body.String())
			assert.Empty(t, stub.calls)
		})
	}
}

func TestCreateBooking_MalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"empty":         ``,
		"not json":      `activity=a1`,
		"wrong type":    `{"activity":42}`,
		"array":         `[]`,
		"trailing data": `{"activity":"a1"} {"x":1}`,
		"stray bracket": `{"activity":"a1","name":"Ada","email":"ada@example.com"}]`,
		"stray brace":   `{"activity":"a1","name":"Ada","email":"ada@example.com"}}`,
		"null":          `null`,
		"string":        `"{\"activity\":\"a1\"}"`,
	} {
		t.Run(name, func(t *testing.T) {
			stub := &stubCreator{}
			rec := doBooking(t, &BookingHandler{Bookings: stub}, http.MethodPost, body)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"internal_error","message":"Error creating booking"}`, rec.Body.String())
			assert.Empty(t, stub.calls)
		})
	}
}

func TestCreateBooking_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("%w: name is required", service.ErrInvalidBooking), http.StatusBadRequest,
			`{"error":"invalid_request","message":"Invalid booking request"}`},
		{fmt.Errorf("load activity x: %w", repository.ErrActivityNotFound), http.StatusNotFound,
			`{"error":"activity_not_found","message":"Activity not found"}`},
		{errors.New("store booking: connection reset"), http.StatusInternalServerError,
			`{"error":"internal_error","message":"Error creating booking"}`},
	}
	for _, tc := range cases {
		rec := doBooking(t, &BookingHandler{Bookings: &stubCreator{err: tc.err}}, http.MethodPost,
			`{"activity":"a1","name":"Ada","email":"ada@example.com"}`)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "connection reset")
	}
}

type stubListings struct {
	activities []model.Activity
	views      []model.BookingView
	mode       booking.ViewMode
	err        error
}

func (s *stubListings) ActivitiesWithSales(ctx context.Context) ([]model.Activity, error) {
	return s.activities, s.err
}

func (s *stubListings) BookingViews(ctx context.Context, mode booking.ViewMode) ([]model.BookingView, error) {
	s.mode = mode
	return s.views, s.err
}

func get(t *testing.T, fn echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, fn(e.NewContext(req, rec)))
	return rec
}

func TestListActivities(t *testing.T) {
	stub := &stubListings{activities: []model.Activity{{
		ID: "a1", Name: "Canyoning", ImageSrc: "/c.jpg", ImageAlt: "canyon",
		Date: time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC), Price: 85, PlaceLimit: 2, Sales: 2, SoldOut: true,
	}}}
	h := &ListingHandler{Listings: stub}

	rec := get(t, h.ListActivities, "/api/activities")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[{"id":"a1","name":"Canyoning","imageSrc":"/c.jpg","imageAlt":"canyon",
		"date":"2026-07-01T09:00:00Z","price":85,"placeLimit":2,"sales":2,"soldOut":true}]}`, rec.Body.String())
}

func TestListActivities_ReadFailureDegrades(t *testing.T) {
	h := &ListingHandler{Listings: &stubListings{err: errors.New("db down")}}
	rec := get(t, h.ListActivities, "/api/activities")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestListBookings_Views(t *testing.T) {
	created := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubListings{views: []model.BookingView{{
		Booking: model.Booking{ID: "b1", Name: "Ada", Email: "ada@example.com", ActivityID: "gone", IsWaitlisted: true, CreatedAt: created},
	}}}
	h := &ListingHandler{Listings: stub}

	rec := get(t, h.ListBookings, "/api/admin/bookings?view=waitlist")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, booking.ViewWaitlist, stub.mode)
	assert.JSONEq(t, `{"view":"waitlist","items":[{"id":"b1","name":"Ada","email":"ada@example.com",
		"activityId":"gone","isWaitlisted":true,"createdAt":"2026-06-01T10:00:00Z","activity":null}]}`, rec.Body.String())

	get(t, h.ListBookings, "/api/admin/bookings")
	assert.Equal(t, booking.ViewConfirmed, stub.mode)

	get(t, h.ListBookings, "/api/admin/bookings?view=bogus")
	assert.Equal(t, booking.ViewConfirmed, stub.mode)
}

func TestListBookings_JoinedActivityBesideActivityID(t *testing.T) {
	created := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubListings{views: []model.BookingView{{
		Booking:  model.Booking{ID: "b1", Name: "Ada", Email: "ada@example.com", ActivityID: "a1", CreatedAt: created},
		Activity: &model.Activity{ID: "a1", Name: "Kayak", Date: created, Price: 49.5, PlaceLimit: 4},
	}}}
	h := &ListingHandler{Listings: stub}

	rec := get(t, h.ListBookings, "/api/admin/bookings?view=all")
	assert.JSONEq(t, `{"view":"all","items":[{"id":"b1","name":"Ada","email":"ada@example.com",
		"activityId":"a1","isWaitlisted":false,"createdAt":"2026-06-01T10:00:00Z",
		"activity":{"id":"a1","name":"Kayak","imageSrc":"","imageAlt":"","date":"2026-06-01T10:00:00Z",
			"price":49.5,"placeLimit":4,"sales":0,"soldOut":false}}]}`, rec.Body.String())
}

func TestListBookings_EmptyIsArray(t *testing.T) {
	h := &ListingHandler{Listings: &stubListings{views: []model.BookingView{}}}
	rec := get(t, h.ListBookings, "/api/admin/bookings?view=all")
	assert.JSONEq(t, `{"view":"all","items":[]}`, rec.Body.String())

	h = &ListingHandler{Listings: &stubListings{err: errors.New("db down")}}
	rec = get(t, h.ListBookings, "/api/admin/bookings")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"view":"confirmed","items":[]}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := get(t, Health, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestDecodeCreateBooking(t *testing.T) {
	req, err := decodeCreateBooking(strings.NewReader(" \n{\"activity\":\"a1\",\"name\":\"Ada\",\"email\":\"e@x.io\",\"isWaitlisted\":true,\"extra\":1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "a1", req.Activity)
	require.NotNil(t, req.IsWaitlisted)
	assert.True(t, *req.IsWaitlisted)
}
