package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/outdoor-ventures/internal/clock"
	"github.com/iliyamo/outdoor-ventures/internal/model"
	"github.com/iliyamo/outdoor-ventures/internal/queue"
)

// ErrInvalidBooking is returned when a booking request fails validation.
// Handlers translate this into an HTTP 400 response.
var ErrInvalidBooking = errors.New("invalid booking request")

const publishTimeout = 3 * time.Second

// CreateBookingInput is a decoded booking request.  IsWaitlisted is the
// client's hint; it is only stored when client trust is enabled.
type CreateBookingInput struct {
	ActivityID   string
	Name         string
	Email        string
	IsWaitlisted *bool
}

// BookingService creates bookings.
type BookingService struct {
	activities  ActivityReader
	bookings    BookingWriter
	clock       clock.Clock
	newID       func() string
	publisher   EventPublisher
	cache       CacheInvalidator
	trustClient bool
}

type Option func(*BookingService)

// WithClock overrides the clock used to stamp createdAt.
func WithClock(c clock.Clock) Option { return func(s *BookingService) { s.clock = c } }

// WithIDGenerator overrides the booking id generator (UUIDv4 by default).
func WithIDGenerator(fn func() string) Option { return func(s *BookingService) { s.newID = fn } }

// WithPublisher publishes a booking.created event after every booking.
func WithPublisher(p EventPublisher) Option { return func(s *BookingService) { s.publisher = p } }

// WithCacheInvalidator drops cached listings after every booking.
func WithCacheInvalidator(c CacheInvalidator) Option {
	return func(s *BookingService) { s.cache = c }
}

// WithClientWaitlistTrust stores the client's isWaitlisted hint verbatim
// instead of deciding capacity on the server.
func WithClientWaitlistTrust(trust bool) Option {
	return func(s *BookingService) { s.trustClient = trust }
}

func NewBookingService(activities ActivityReader, bookings BookingWriter, opts ...Option) *BookingService {
	s := &BookingService{
		activities: activities,
		bookings:   bookings,
		clock:      clock.NewSystem(),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateBooking validates in, stores a new booking and returns it with its
// id, createdAt and final waitlist flag.  The store write is detached from
// ctx cancellation so a client disconnect cannot abort a booking midway.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	in.ActivityID = strings.TrimSpace(in.ActivityID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	activity, err := s.activities.GetActivity(ctx, in.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("load activity %s: %w", in.ActivityID, err)
	}

	b := model.Booking{
		ID:         s.newID(),
		Name:       in.Name,
		Email:      in.Email,
		ActivityID: activity.ID,
		CreatedAt:  s.clock.Now(),
	}

	if s.trustClient {
		b.IsWaitlisted = in.IsWaitlisted != nil && *in.IsWaitlisted
		err = s.bookings.Create(ctx, &b)
	} else {
		_, err = s.bookings.CreateChecked(ctx, &b)
	}
	if err != nil {
		return nil, fmt.Errorf("store booking: %w", err)
	}

	s.afterCreate(ctx, b, activity)
	return &b, nil
}

// afterCreate runs the best-effort side effects of a stored booking.
// Failures are logged and never reported to the client.
func (s *BookingService) afterCreate(ctx context.Context, b model.Booking, a *model.Activity) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("booking: cache invalidation failed: %v", err)
		}
	}
	if s.publisher != nil {
		pctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		ev := queue.BookingCreatedEvent{
			BookingID:    b.ID,
			ActivityID:   b.ActivityID,
			ActivityName: a.Name,
			ActivityDate: a.Date.UTC().Format(time.RFC3339),
			Name:         b.Name,
			Email:        b.Email,
			IsWaitlisted: b.IsWaitlisted,
			CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := s.publisher.PublishBookingCreated(pctx, ev); err != nil {
			log.Printf("booking: publish booking %s failed: %v", b.ID, err)
		}
	}
}

func validateInput(in CreateBookingInput) error {
	switch {
	case in.ActivityID == "":
		return fmt.Errorf("%w: activity is required", ErrInvalidBooking)
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidBooking)
	case in.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidBooking)
	case !plausibleEmail(in.Email):
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidBooking, in.Email)
	}
	return nil
}

// plausibleEmail accepts a bare address with one @ and a dotted domain.  The
// address is not verified.
func plausibleEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || strings.Count(s, "@") != 1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && !strings.HasSuffix(domain, ".")
}
