// Package store opens the data store selected by configuration and exposes
// its activity and booking repositories behind one set of interfaces.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/config"
	"github.com/iliyamo/outdoor-ventures/internal/database"
	"github.com/iliyamo/outdoor-ventures/internal/model"
	"github.com/iliyamo/outdoor-ventures/internal/repository"
	"github.com/iliyamo/outdoor-ventures/internal/repository/mongostore"
)

// ActivityStore is implemented by repository.ActivityRepo and
// mongostore.ActivityRepo.
type ActivityStore interface {
	ListActivities(ctx context.Context) ([]model.Activity, error)
	GetActivity(ctx context.Context, id string) (*model.Activity, error)
	InsertActivities(ctx context.Context, activities []model.Activity) (int, error)
}

// BookingStore is implemented by repository.BookingRepo and
// mongostore.BookingRepo.
type BookingStore interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	CreateChecked(ctx context.Context, b *model.Booking) (booking.Decision, error)
	InsertBookings(ctx context.Context, bookings []model.Booking) (int, error)
}

// Stores bundles the repositories of one backend with its shutdown hook.
type Stores struct {
	Driver     string
	Activities ActivityStore
	Bookings   BookingStore

	close func(ctx context.Context) error
}

// Close releases the underlying connection pool or client.
func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured backend.  SQL backends are migrated and
// MongoDB indexes are ensured before the stores are returned.
func Open(ctx context.Context, cfg config.StoreConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err := database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return sqlStores(ctx, cfg.Driver, db, database.MySQL)

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlStores(ctx, cfg.Driver, db, database.SQLite)

	case config.DriverMongo:
		client, err := database.OpenMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
			log.Printf("store: %v", err)
		}
		return &Stores{
			Driver:     cfg.Driver,
			Activities: mongostore.NewActivityRepo(mdb),
			Bookings:   mongostore.NewBookingRepo(mdb),
			close:      client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func sqlStores(ctx context.Context, driver string, db *sql.DB, dialect database.Dialect) (*Stores, error) {
	if err := database.Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return &Stores{
		Driver:     driver,
		Activities: repository.NewActivityRepo(db, dialect),
		Bookings:   repository.NewBookingRepo(db, dialect),
		close:      func(context.Context) error { return db.Close() },
	}, nil
}
