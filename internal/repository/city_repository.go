// Package repository contains data access logic for the marketplace
// collections.  This file covers cities.  A City is a destination that
// tours can reference; the name and description are localized JSON
// columns and the slug is the unique URL-safe identifier used by the
// public pages.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/davronbekm/silkroad-booking/internal/i18n"
)

// City mirrors a row of the `cities` table.
type City struct {
	ID          uint64         // cities.id
	Slug        string         // cities.slug (unique, URL-safe)
	Name        i18n.Text      // cities.name (JSON)
	Description i18n.Text      // cities.description (JSON)
	CoverImage  sql.NullString // cities.cover_image (nullable URL)
	CreatedAt   time.Time      // cities.created_at
}

// ErrCityNotFound indicates that no matching city row exists.
var ErrCityNotFound = errors.New("city not found")

// CityRepo manages persistence for cities.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the given DB handle.
func NewCityRepo(db *sql.DB) *CityRepo {
	return &CityRepo{db: db}
}

const cityCols = `id, slug, name, description, cover_image, created_at`

func scanCity(row interface{ Scan(...any) error }, c *City) error {
	return row.Scan(&c.ID, &c.Slug, &c.Name, &c.Description, &c.CoverImage, &c.CreatedAt)
}

// ListAll returns every city ordered by slug.  The tours page fetches
// this full list once and resolves city-slug filters against it.
func (r *CityRepo) ListAll(ctx context.Context) ([]City, error) {
	const q = `SELECT ` + cityCols + ` FROM cities ORDER BY slug ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []City
	for rows.Next() {
		var c City
		if err := scanCity(rows, &c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a city by primary key.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*City, error) {
	const q = `SELECT ` + cityCols + ` FROM cities WHERE id = ?`
	var c City
	if err := scanCity(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetBySlug retrieves a city by its unique slug.  It returns
// ErrCityNotFound when the slug matches no row; the caller renders
// that as an empty state, not an error.
func (r *CityRepo) GetBySlug(ctx context.Context, slug string) (*City, error) {
	const q = `SELECT ` + cityCols + ` FROM cities WHERE slug = ?`
	var c City
	if err := scanCity(r.db.QueryRowContext(ctx, q, slug), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a city and populates the generated ID and DB-default
// fields back onto the struct.
func (r *CityRepo) Create(ctx context.Context, c *City) error {
	const q = `INSERT INTO cities (slug, name, description, cover_image) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Slug, c.Name, c.Description, c.CoverImage)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	const sel = `SELECT ` + cityCols + ` FROM cities WHERE id = ?`
	return scanCity(r.db.QueryRowContext(ctx, sel, c.ID), c)
}

// Update rewrites the editable fields of a city by primary key and
// reloads the row.  Returns ErrCityNotFound if the id matches nothing.
func (r *CityRepo) Update(ctx context.Context, c *City) error {
	const q = `UPDATE cities SET slug = ?, name = ?, description = ?, cover_image = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, c.Slug, c.Name, c.Description, c.CoverImage, c.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + cityCols + ` FROM cities WHERE id = ?`
	if err := scanCity(r.db.QueryRowContext(ctx, sel, c.ID), c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCityNotFound
		}
		return err
	}
	return nil
}

// Delete removes a city.  Tours referencing it keep a dangling weak
// reference by design (the city link is lookup-only, not ownership),
// so the reference is cleared rather than blocking the delete.
func (r *CityRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, `UPDATE tours SET city_id = NULL WHERE city_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrCityNotFound
		return err
	}
	return nil
}
