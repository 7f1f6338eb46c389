// This file defines the TrainRoute model and repository methods for the
// train schedule.  Routes carry free-text train types and city labels
// (not foreign keys), HH:MM time-of-day strings, and a published/draft
// status.  The public listing fixes the ordering to train_type, then
// from_city, then departure_time: the grouping view depends on that
// order to partition routes by train type in first-seen order.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Train route statuses.
const (
	RouteStatusPublished = "published"
	RouteStatusDraft     = "draft"
)

// TrainRoute mirrors a row of the `train_routes` table.
type TrainRoute struct {
	ID            uint64    // train_routes.id
	TrainType     string    // train_routes.train_type, free text ("Afrosiyob", "Sharq")
	FromCity      string    // train_routes.from_city, free label
	ToCity        string    // train_routes.to_city, free label
	DepartureTime string    // train_routes.departure_time, "HH:MM"
	ArrivalTime   string    // train_routes.arrival_time, "HH:MM"
	OperatingDays string    // train_routes.operating_days, free text, default "Daily"
	PriceCents    uint32    // train_routes.price_cents, 0 means "not shown"
	Currency      string    // train_routes.currency
	Status        string    // train_routes.status (published|draft)
	CreatedAt     time.Time // train_routes.created_at
}

// ErrTrainRouteNotFound indicates that no matching route row exists.
var ErrTrainRouteNotFound = errors.New("train route not found")

// TrainRouteRepo manages persistence for train routes.
type TrainRouteRepo struct {
	db *sql.DB
}

// NewTrainRouteRepo constructs a TrainRouteRepo with the given DB handle.
func NewTrainRouteRepo(db *sql.DB) *TrainRouteRepo {
	return &TrainRouteRepo{db: db}
}

const routeCols = `id, train_type, from_city, to_city, departure_time, arrival_time,
				   operating_days, price_cents, currency, status, created_at`

func scanRoute(row interface{ Scan(...any) error }, t *TrainRoute) error {
	return row.Scan(&t.ID, &t.TrainType, &t.FromCity, &t.ToCity, &t.DepartureTime, &t.ArrivalTime,
		&t.OperatingDays, &t.PriceCents, &t.Currency, &t.Status, &t.CreatedAt)
}

func (r *TrainRouteRepo) queryRoutes(ctx context.Context, q string, args ...any) ([]TrainRoute, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []TrainRoute
	for rows.Next() {
		var t TrainRoute
		if err := scanRoute(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPublished returns the published routes in grouping order.
func (r *TrainRouteRepo) ListPublished(ctx context.Context) ([]TrainRoute, error) {
	const q = `SELECT ` + routeCols + ` FROM train_routes
			   WHERE status = 'published'
			   ORDER BY train_type ASC, from_city ASC, departure_time ASC`
	return r.queryRoutes(ctx, q)
}

// ListAll returns all routes, drafts included, for the admin console.
func (r *TrainRouteRepo) ListAll(ctx context.Context) ([]TrainRoute, error) {
	const q = `SELECT ` + routeCols + ` FROM train_routes
			   ORDER BY train_type ASC, from_city ASC, departure_time ASC`
	return r.queryRoutes(ctx, q)
}

// GetByID retrieves a route by primary key.
func (r *TrainRouteRepo) GetByID(ctx context.Context, id uint64) (*TrainRoute, error) {
	const q = `SELECT ` + routeCols + ` FROM train_routes WHERE id = ?`
	var t TrainRoute
	if err := scanRoute(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainRouteNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a route and reloads DB defaults onto the struct.
func (r *TrainRouteRepo) Create(ctx context.Context, t *TrainRoute) error {
	const q = `INSERT INTO train_routes (train_type, from_city, to_city, departure_time, arrival_time,
			   operating_days, price_cents, currency, status)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.TrainType, t.FromCity, t.ToCity, t.DepartureTime,
		t.ArrivalTime, t.OperatingDays, t.PriceCents, t.Currency, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT ` + routeCols + ` FROM train_routes WHERE id = ?`
	return scanRoute(r.db.QueryRowContext(ctx, sel, t.ID), t)
}

// Update rewrites a route by primary key and reloads it.
func (r *TrainRouteRepo) Update(ctx context.Context, t *TrainRoute) error {
	const q = `UPDATE train_routes SET train_type = ?, from_city = ?, to_city = ?, departure_time = ?,
			   arrival_time = ?, operating_days = ?, price_cents = ?, currency = ?, status = ?
			   WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, t.TrainType, t.FromCity, t.ToCity, t.DepartureTime,
		t.ArrivalTime, t.OperatingDays, t.PriceCents, t.Currency, t.Status, t.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + routeCols + ` FROM train_routes WHERE id = ?`
	if err := scanRoute(r.db.QueryRowContext(ctx, sel, t.ID), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTrainRouteNotFound
		}
		return err
	}
	return nil
}

// Delete removes a route by primary key.
func (r *TrainRouteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM train_routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTrainRouteNotFound
	}
	return nil
}
