package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/outdoor-ventures/internal/booking"
	"github.com/iliyamo/outdoor-ventures/internal/database"
	"github.com/iliyamo/outdoor-ventures/internal/model"
)

// BookingRepo stores bookings.  Bookings are append-only: there is no update
// or delete.  A waitlisted booking is never promoted.
type BookingRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB, dialect database.Dialect) *BookingRepo {
	return &BookingRepo{db: db, dialect: dialect}
}

const bookingColumns = `id, activity_id, name, email, is_waitlisted, created_at_ms`

// ListBookings returns every booking, newest first.
func (r *BookingRepo) ListBookings(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at_ms DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var (
			b         model.Booking
			createdMs int64
		)
		if err := rows.Scan(&b.ID, &b.ActivityID, &b.Name, &b.Email, &b.IsWaitlisted, &createdMs); err != nil {
			return nil, err
		}
		b.CreatedAt = fromMillis(createdMs)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Create stores b exactly as given, including its IsWaitlisted flag.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.ActivityID, b.Name, b.Email, b.IsWaitlisted, toMillis(b.CreatedAt),
	)
	return err
}

// CreateChecked decides whether b is confirmed or waitlisted and stores it in
// one transaction.  The activity row is locked (MySQL) or the database write
// lock is held (SQLite) while confirmed bookings are counted, so two
// concurrent requests for the last place cannot both be confirmed.  b's
// IsWaitlisted is overwritten with the decision.
func (r *BookingRepo) CreateChecked(ctx context.Context, b *model.Booking) (booking.Decision, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var placeLimit int
	err = tx.QueryRowContext(ctx,
		`SELECT place_limit FROM activities WHERE id = ?`+r.dialect.ForUpdate(), b.ActivityID,
	).Scan(&placeLimit)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrActivityNotFound
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("lock activity: %w", err)
	}

	var sales int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE activity_id = ? AND is_waitlisted = 0`, b.ActivityID,
	).Scan(&sales); err != nil {
		return "", fmt.Errorf("count sales: %w", err)
	}

	decision := booking.Decide(placeLimit, sales)
	b.IsWaitlisted = decision.IsWaitlisted()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (`+bookingColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.ActivityID, b.Name, b.Email, b.IsWaitlisted, toMillis(b.CreatedAt),
	); err != nil {
		return "", fmt.Errorf("insert booking: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return "", err
	}
	return decision, nil
}

// InsertBookings stores bookings verbatim, skipping ids that already exist,
// and returns how many rows were inserted.  Used by the seed command.
func (r *BookingRepo) InsertBookings(ctx context.Context, bookings []model.Booking) (int, error) {
	q := r.dialect.InsertIgnore() + ` INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	inserted := 0
	for _, b := range bookings {
		res, err := r.db.ExecContext(ctx, q, b.ID, b.ActivityID, b.Name, b.Email, b.IsWaitlisted, toMillis(b.CreatedAt))
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}
