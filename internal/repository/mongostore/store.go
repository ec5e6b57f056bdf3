// Package mongostore is the MongoDB implementation of the activity and
// booking stores, compatible with the collections written by the original
// sample-data loader.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/model"
	"github.com/iliyamo/outdoor-ventures/internal/repository"
)

// ActivityRepo reads activities from the activities collection.
type ActivityRepo struct {
	coll *mongo.Collection
}

func NewActivityRepo(db *mongo.Database) *ActivityRepo {
	return &ActivityRepo{coll: db.Collection(ActivitiesCollection)}
}

func (r *ActivityRepo) ListActivities(ctx context.Context) ([]model.Activity, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]model.Activity, 0)
	for cur.Next(ctx) {
		var d activityDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

func (r *ActivityRepo) GetActivity(ctx context.Context, id string) (*model.Activity, error) {
	var d activityDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": idCandidates(id)}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	a := d.toModel()
	return &a, nil
}

// InsertActivities inserts activities one by one, skipping duplicate ids.
func (r *ActivityRepo) InsertActivities(ctx context.Context, activities []model.Activity) (int, error) {
	inserted := 0
	for _, a := range activities {
		if _, err := r.coll.InsertOne(ctx, activityToDoc(a)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// BookingRepo stores bookings in the bookings collection.
type BookingRepo struct {
	client     *mongo.Client
	bookings   *mongo.Collection
	activities *mongo.Collection
}

func NewBookingRepo(db *mongo.Database) *BookingRepo {
	return &BookingRepo{
		client:     db.Client(),
		bookings:   db.Collection(BookingsCollection),
		activities: db.Collection(ActivitiesCollection),
	}
}

// ListBookings returns every booking, newest first.
func (r *BookingRepo) ListBookings(ctx context.Context) ([]model.Booking, error) {
	cur, err := r.bookings.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]model.Booking, 0)
	for cur.Next(ctx) {
		var d bookingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

// Create stores b exactly as given, including its IsWaitlisted flag.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.bookings.InsertOne(ctx, bookingToDoc(*b))
	return err
}

// confirmedFilter matches confirmed bookings for an activity.  Legacy
// bookings without an isWaitlisted field count as confirmed.
func confirmedFilter(activityID string) bson.M {
	return bson.M{
		"activity":     idCandidates(activityID),
		"isWaitlisted": bson.M{"$ne": true},
	}
}

// CreateChecked decides and stores b inside a multi-document transaction.
// Incrementing the activity's bookingSeq makes two concurrent transactions
// for the same activity write-conflict, and the driver retries the loser, so
// the confirmed count it sees includes the winner's booking.  Requires a
// replica set or sharded cluster.
func (r *BookingRepo) CreateChecked(ctx context.Context, b *model.Booking) (booking.Decision, error) {
	sess, err := r.client.StartSession()
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.decideAndInsert(sc, b)
	})
	if err != nil {
		return "", err
	}
	decision := res.(booking.Decision)
	b.IsWaitlisted = decision.IsWaitlisted()
	return decision, nil
}

// decideAndInsert bumps the activity's bookingSeq, counts its confirmed
// bookings and inserts b flagged by the resulting decision.  b itself is not
// modified; a retried transaction runs it again from scratch.
func (r *BookingRepo) decideAndInsert(ctx context.Context, b *model.Booking) (booking.Decision, error) {
	var a activityDoc
	err := r.activities.FindOneAndUpdate(ctx,
		bson.M{"_id": idCandidates(b.ActivityID)},
		bson.M{"$inc": bson.M{"bookingSeq": 1}},
	).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", repository.ErrActivityNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lock activity: %w", err)
	}

	sales, err := r.bookings.CountDocuments(ctx, confirmedFilter(b.ActivityID))
	if err != nil {
		return "", fmt.Errorf("count sales: %w", err)
	}

	decision := booking.Decide(a.PlaceLimit, int(sales))
	doc := *b
	doc.IsWaitlisted = decision.IsWaitlisted()
	if _, err := r.bookings.InsertOne(ctx, bookingToDoc(doc)); err != nil {
		return "", fmt.Errorf("insert booking: %w", err)
	}
	return decision, nil
}

// InsertBookings inserts bookings verbatim, skipping duplicate ids.
func (r *BookingRepo) InsertBookings(ctx context.Context, bookings []model.Booking) (int, error) {
	inserted := 0
	for _, b := range bookings {
		if _, err := r.bookings.InsertOne(ctx, bookingToDoc(b)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

// EnsureIndexes creates the indexes used by the capacity count and the admin
// listing.  It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(BookingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "activity", Value: 1}, {Key: "isWaitlisted", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create booking indexes: %w", err)
	}
	return nil
}
