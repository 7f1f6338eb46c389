// This file defines the Tour model and repository methods for tours.
// Tours are the primary listing of the marketplace: localized title,
// description and itinerary, localized included/excluded lists, a price
// snapshot source (PriceCents), a duration in days, an ordered image
// list whose first entry is the cover, and an optional weak reference
// to a city used for filtering.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/davronbekm/silkroad-booking/internal/i18n"
)

// Tour mirrors a row of the `tours` table.  CityName and CitySlug are
// read-only projections joined from the cities table for list and
// detail responses; they are never written back.
type Tour struct {
	ID           uint64        // tours.id
	Slug         string        // tours.slug (unique, URL-safe)
	Title        i18n.Text     // tours.title (JSON)
	Description  i18n.Text     // tours.description (JSON)
	Itinerary    i18n.Text     // tours.itinerary (JSON)
	Included     i18n.List     // tours.included (JSON)
	Excluded     i18n.List     // tours.excluded (JSON)
	PriceCents   uint32        // tours.price_cents, per participant
	DurationDays uint32        // tours.duration_days (>= 1)
	Images       StringList    // tours.images (JSON array of URLs)
	CityID       sql.NullInt64 // tours.city_id (nullable weak reference)
	CreatedAt    time.Time     // tours.created_at

	CityName i18n.Text      // cities.name, joined
	CitySlug sql.NullString // cities.slug, joined
}

// ErrTourNotFound indicates that a tour was not located in the DB.
var ErrTourNotFound = errors.New("tour not found")

// TourRepo manages persistence for tours.
type TourRepo struct {
	db *sql.DB
}

// NewTourRepo constructs a TourRepo with the given DB handle.
func NewTourRepo(db *sql.DB) *TourRepo {
	return &TourRepo{db: db}
}

const tourSelect = `SELECT t.id, t.slug, t.title, t.description, t.itinerary, t.included, t.excluded,
	   t.price_cents, t.duration_days, t.images, t.city_id, t.created_at, c.name, c.slug
FROM tours t
LEFT JOIN cities c ON c.id = t.city_id`

func scanTour(row interface{ Scan(...any) error }, t *Tour) error {
	return row.Scan(&t.ID, &t.Slug, &t.Title, &t.Description, &t.Itinerary, &t.Included, &t.Excluded,
		&t.PriceCents, &t.DurationDays, &t.Images, &t.CityID, &t.CreatedAt, &t.CityName, &t.CitySlug)
}

func (r *TourRepo) queryTours(ctx context.Context, q string, args ...any) ([]Tour, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Tour
	for rows.Next() {
		var t Tour
		if err := scanTour(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// List returns all tours, newest first, with the city projection joined.
func (r *TourRepo) List(ctx context.Context) ([]Tour, error) {
	return r.queryTours(ctx, tourSelect+` ORDER BY t.created_at DESC`)
}

// ListByCity returns the tours referencing the given city id, newest
// first.  The caller resolves a city slug to an id beforehand.
func (r *TourRepo) ListByCity(ctx context.Context, cityID uint64) ([]Tour, error) {
	return r.queryTours(ctx, tourSelect+` WHERE t.city_id = ? ORDER BY t.created_at DESC`, cityID)
}

// GetByID retrieves a tour by primary key.
func (r *TourRepo) GetByID(ctx context.Context, id uint64) (*Tour, error) {
	var t Tour
	if err := scanTour(r.db.QueryRowContext(ctx, tourSelect+` WHERE t.id = ?`, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return &t, nil
}

// GetBySlug retrieves a tour by its unique slug with the city joined.
func (r *TourRepo) GetBySlug(ctx context.Context, slug string) (*Tour, error) {
	var t Tour
	if err := scanTour(r.db.QueryRowContext(ctx, tourSelect+` WHERE t.slug = ?`, slug), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a tour and populates the generated ID and DB-default
// fields back onto the struct.
func (r *TourRepo) Create(ctx context.Context, t *Tour) error {
	const q = `INSERT INTO tours (slug, title, description, itinerary, included, excluded,
			   price_cents, duration_days, images, city_id)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Slug, t.Title, t.Description, t.Itinerary, t.Included,
		t.Excluded, t.PriceCents, t.DurationDays, t.Images, t.CityID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return scanTour(r.db.QueryRowContext(ctx, tourSelect+` WHERE t.id = ?`, t.ID), t)
}

// Update rewrites the editable fields of a tour by primary key and
// reloads the row.  Stored booking totals are deliberately untouched:
// a price change affects future bookings only.
func (r *TourRepo) Update(ctx context.Context, t *Tour) error {
	const q = `UPDATE tours SET slug = ?, title = ?, description = ?, itinerary = ?, included = ?,
			   excluded = ?, price_cents = ?, duration_days = ?, images = ?, city_id = ?
			   WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, t.Slug, t.Title, t.Description, t.Itinerary, t.Included,
		t.Excluded, t.PriceCents, t.DurationDays, t.Images, t.CityID, t.ID); err != nil {
		return err
	}
	if err := scanTour(r.db.QueryRowContext(ctx, tourSelect+` WHERE t.id = ?`, t.ID), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTourNotFound
		}
		return err
	}
	return nil
}

// Delete removes a tour inside a transaction.  If the tour does not
// exist, ErrTourNotFound is returned.  If any bookings reference it,
// the deletion is aborted and ErrConflict is returned so the operator
// sees why the row cannot go away.
func (r *TourRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM tours WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrTourNotFound
		}
		return err
	}
	var bookingCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE tour_id = ?`, id).Scan(&bookingCount); err != nil {
		return err
	}
	if bookingCount > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM tours WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}
