package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/outdoor-ventures/internal/database"
	"github.com/iliyamo/outdoor-ventures/internal/model"
)

// ActivityRepo reads activities.  Activities are written only by the seed
// command; the HTTP service never modifies them.
type ActivityRepo struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewActivityRepo returns a new ActivityRepo bound to the given database.
func NewActivityRepo(db *sql.DB, dialect database.Dialect) *ActivityRepo {
	return &ActivityRepo{db: db, dialect: dialect}
}

const activityColumns = `id, name, image_src, image_alt, date_ms, price, place_limit`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (model.Activity, error) {
	var (
		a      model.Activity
		dateMs int64
	)
	if err := row.Scan(&a.ID, &a.Name, &a.ImageSrc, &a.ImageAlt, &dateMs, &a.Price, &a.PlaceLimit); err != nil {
		return model.Activity{}, err
	}
	a.Date = fromMillis(dateMs)
	return a, nil
}

// ListActivities returns every activity ordered by date.  Sales and SoldOut
// are left zero; they are derived by the booking package.
func (r *ActivityRepo) ListActivities(ctx context.Context) ([]model.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY date_ms ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetActivity returns the activity with the given id or ErrActivityNotFound.
func (r *ActivityRepo) GetActivity(ctx context.Context, id string) (*model.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertActivities stores activities, skipping ids that already exist, and
// returns how many rows were inserted.  Used by the seed command.
func (r *ActivityRepo) InsertActivities(ctx context.Context, activities []model.Activity) (int, error) {
	q := r.dialect.InsertIgnore() + ` INTO activities (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	inserted := 0
	for _, a := range activities {
		res, err := r.db.ExecContext(ctx, q, a.ID, a.Name, a.ImageSrc, a.ImageAlt, toMillis(a.Date), a.Price, a.PlaceLimit)
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}
