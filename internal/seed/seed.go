// Package seed loads the bundled sample activities and bookings into a
// store.  Loading is repeatable: records whose id already exists are skipped.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/outdoor-ventures/internal/model"
)

//go:embed data/*.json
var sampleData embed.FS

// SampleData returns the bundled data directory (activities.json and
// bookings.json).
func SampleData() fs.FS {
	sub, err := fs.Sub(sampleData, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// bookingNamespace derives stable ids for sample bookings that have none, so
// reloading the same file inserts nothing new.
var bookingNamespace = uuid.MustParse("9c1d5bd4-1e0f-4f51-8f43-6a0d2c7e51a3")

type ActivityInserter interface {
	InsertActivities(ctx context.Context, activities []model.Activity) (int, error)
}

type BookingInserter interface {
	InsertBookings(ctx context.Context, bookings []model.Booking) (int, error)
}

// Result reports how many records were read and inserted.
type Result struct {
	Activities, ActivitiesInserted int
	Bookings, BookingsInserted     int
}

type activityRecord struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	ImageSrc   string  `json:"imageSrc"`
	ImageAlt   string  `json:"imageAlt"`
	Date       string  `json:"date"`
	Price      float64 `json:"price"`
	PlaceLimit int     `json:"placeLimit"`
}

type bookingRecord struct {
	ID           string `json:"_id"`
	Activity     string `json:"activity"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsWaitlisted *bool  `json:"isWaitlisted"`
	CreatedAt    string `json:"createdAt"`
}

// Load reads activities.json and bookings.json from fsys and inserts them.
func Load(ctx context.Context, activities ActivityInserter, bookings BookingInserter, fsys fs.FS) (Result, error) {
	var res Result

	acts, err := readActivities(fsys)
	if err != nil {
		return res, err
	}
	res.Activities = len(acts)
	if res.ActivitiesInserted, err = activities.InsertActivities(ctx, acts); err != nil {
		return res, fmt.Errorf("insert activities: %w", err)
	}

	bks, err := readBookings(fsys)
	if err != nil {
		return res, err
	}
	res.Bookings = len(bks)
	if res.BookingsInserted, err = bookings.InsertBookings(ctx, bks); err != nil {
		return res, fmt.Errorf("insert bookings: %w", err)
	}
	return res, nil
}

func readActivities(fsys fs.FS) ([]model.Activity, error) {
	raw, err := fs.ReadFile(fsys, "activities.json")
	if err != nil {
		return nil, fmt.Errorf("read activities: %w", err)
	}
	var recs []activityRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("parse activities: %w", err)
	}
	out := make([]model.Activity, 0, len(recs))
	for i, r := range recs {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("activity %d: missing _id", i)
		}
		date, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return nil, fmt.Errorf("activity %s: date: %w", r.ID, err)
		}
		out = append(out, model.Activity{
			ID:         r.ID,
			Name:       r.Name,
			ImageSrc:   r.ImageSrc,
			ImageAlt:   r.ImageAlt,
			Date:       date.UTC(),
			Price:      r.Price,
			PlaceLimit: r.PlaceLimit,
		})
	}
	return out, nil
}

func readBookings(fsys fs.FS) ([]model.Booking, error) {
	raw, err := fs.ReadFile(fsys, "bookings.json")
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}
	var recs []bookingRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("parse bookings: %w", err)
	}
	out := make([]model.Booking, 0, len(recs))
	for i, r := range recs {
		created, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("booking %d: createdAt: %w", i, err)
		}
		id := r.ID
		if id == "" {
			id = uuid.NewSHA1(bookingNamespace, []byte(r.Activity+"|"+r.Email+"|"+r.CreatedAt)).String()
		}
		out = append(out, model.Booking{
			ID:           id,
			Name:         r.Name,
			Email:        r.Email,
			ActivityID:   r.Activity,
			IsWaitlisted: r.IsWaitlisted != nil && *r.IsWaitlisted,
			CreatedAt:    created.UTC(),
		})
	}
	return out, nil
}
