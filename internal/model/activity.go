package model

import "time"

// Activity is a bookable outdoor event.  Activities are seeded externally
// and never modified by the service.
//
// Fields:
//
//	ID         – opaque identifier (hex object id in the sample data).
//	Name       – display name.
//	ImageSrc   – image URL shown on the listing card.
//	ImageAlt   – alt text for the image.
//	Date       – when the activity takes place.
//	Price      – price per place.
//	PlaceLimit – number of places that can be confirmed.
//	Sales      – derived count of confirmed bookings; never stored.
//	SoldOut    – derived capacity decision for Sales; never stored.
type Activity struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ImageSrc   string    `json:"imageSrc"`
	ImageAlt   string    `json:"imageAlt"`
	Date       time.Time `json:"date"`
	Price      float64   `json:"price"`
	PlaceLimit int       `json:"placeLimit"`
	Sales      int       `json:"sales"`
	SoldOut    bool      `json:"soldOut"`
}
