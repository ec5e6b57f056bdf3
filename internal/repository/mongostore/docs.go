package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/outdoor-ventures/internal/model"
)

// Collection names shared with the sample-data loader.
const (
	ActivitiesCollection = "activities"
	BookingsCollection   = "bookings"
)

// activityDoc is the stored shape of an activity.  Sales is never stored.
// bookingSeq is bumped by every checked booking so concurrent transactions
// on the same activity conflict.
type activityDoc struct {
	ID         bson.RawValue `bson:"_id"`
	Name       string        `bson:"name"`
	ImageSrc   string        `bson:"imageSrc"`
	ImageAlt   string        `bson:"imageAlt"`
	Date       time.Time     `bson:"date"`
	Price      float64       `bson:"price"`
	PlaceLimit int           `bson:"placeLimit"`
	BookingSeq int64         `bson:"bookingSeq,omitempty"`
}

func (d activityDoc) toModel() model.Activity {
	return model.Activity{
		ID:         fromStoredID(d.ID),
		Name:       d.Name,
		ImageSrc:   d.ImageSrc,
		ImageAlt:   d.ImageAlt,
		Date:       d.Date.UTC(),
		Price:      d.Price,
		PlaceLimit: d.PlaceLimit,
	}
}

func activityToDoc(a model.Activity) bson.D {
	return bson.D{
		{Key: "_id", Value: toStoredID(a.ID)},
		{Key: "name", Value: a.Name},
		{Key: "imageSrc", Value: a.ImageSrc},
		{Key: "imageAlt", Value: a.ImageAlt},
		{Key: "date", Value: a.Date.UTC()},
		{Key: "price", Value: a.Price},
		{Key: "placeLimit", Value: a.PlaceLimit},
	}
}

// bookingDoc is the stored shape of a booking.  Older records have no
// isWaitlisted field; they decode as confirmed.
type bookingDoc struct {
	ID           bson.RawValue `bson:"_id"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	Activity     bson.RawValue `bson:"activity"`
	IsWaitlisted *bool         `bson:"isWaitlisted,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d bookingDoc) toModel() model.Booking {
	return model.Booking{
		ID:           fromStoredID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		ActivityID:   fromStoredID(d.Activity),
		IsWaitlisted: d.IsWaitlisted != nil && *d.IsWaitlisted,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func bookingToDoc(b model.Booking) bson.D {
	return bson.D{
		{Key: "_id", Value: toStoredID(b.ID)},
		{Key: "name", Value: b.Name},
		{Key: "email", Value: b.Email},
		{Key: "activity", Value: toStoredID(b.ActivityID)},
		{Key: "isWaitlisted", Value: b.IsWaitlisted},
		{Key: "createdAt", Value: b.CreatedAt.UTC()},
	}
}

// toStoredID stores 24-character hex ids as ObjectIDs, matching the sample
// data; any other id is stored as a plain string.
func toStoredID(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// idCandidates matches an id whether it was stored as an ObjectID or string.
func idCandidates(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$in": bson.A{oid, id}}
	}
	return bson.M{"$eq": id}
}

func fromStoredID(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}
