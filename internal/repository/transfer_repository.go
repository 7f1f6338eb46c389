// This file covers transfers (fixed-price car rides between cities)
// and their bookings.  Transfer descriptions are plain text, not
// localized JSON, matching how operators author them.  A
// TransferBooking is a request row with contact info and a pickup
// date; like ticket requests there is no availability check.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Transfer mirrors a row of the `transfers` table.
type Transfer struct {
	ID            uint64         // transfers.id
	FromCity      string         // transfers.from_city
	ToCity        string         // transfers.to_city
	VehicleType   string         // transfers.vehicle_type (e.g. "Sedan", "Minivan")
	MaxPassengers uint32         // transfers.max_passengers
	PriceCents    uint32         // transfers.price_cents
	Currency      string         // transfers.currency
	Description   sql.NullString // transfers.description (plain text, nullable)
	ImageURL      sql.NullString // transfers.image_url (nullable)
	Status        string         // transfers.status (published|draft)
	CreatedAt     time.Time      // transfers.created_at
}

// TransferBooking mirrors a row of the `transfer_bookings` table.
// FromCity/ToCity are joined for the admin listing.
type TransferBooking struct {
	ID         uint64         // transfer_bookings.id
	TransferID uint64         // transfer_bookings.transfer_id
	UserID     sql.NullInt64  // transfer_bookings.user_id (nullable, guests allowed)
	FullName   string         // transfer_bookings.full_name
	Phone      string         // transfer_bookings.phone
	Email      sql.NullString // transfer_bookings.email
	PickupDate string         // transfer_bookings.pickup_date, "2006-01-02"
	Passengers uint32         // transfer_bookings.passengers
	Notes      sql.NullString // transfer_bookings.notes
	Status     string         // transfer_bookings.status
	CreatedAt  time.Time      // transfer_bookings.created_at
	FromCity   string         // transfers.from_city, joined
	ToCity     string         // transfers.to_city, joined
}

// ErrTransferNotFound indicates that no matching transfer row exists.
var ErrTransferNotFound = errors.New("transfer not found")

// ErrTransferBookingNotFound indicates that no matching booking row exists.
var ErrTransferBookingNotFound = errors.New("transfer booking not found")

// TransferRepo manages persistence for transfers and their bookings.
type TransferRepo struct {
	db *sql.DB
}

// NewTransferRepo constructs a TransferRepo with the given DB handle.
func NewTransferRepo(db *sql.DB) *TransferRepo {
	return &TransferRepo{db: db}
}

const transferCols = `id, from_city, to_city, vehicle_type, max_passengers, price_cents,
					  currency, description, image_url, status, created_at`

func scanTransfer(row interface{ Scan(...any) error }, t *Transfer) error {
	return row.Scan(&t.ID, &t.FromCity, &t.ToCity, &t.VehicleType, &t.MaxPassengers, &t.PriceCents,
		&t.Currency, &t.Description, &t.ImageURL, &t.Status, &t.CreatedAt)
}

func (r *TransferRepo) queryTransfers(ctx context.Context, q string, args ...any) ([]Transfer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Transfer
	for rows.Next() {
		var t Transfer
		if err := scanTransfer(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPublished returns published transfers ordered by route labels.
func (r *TransferRepo) ListPublished(ctx context.Context) ([]Transfer, error) {
	const q = `SELECT ` + transferCols + ` FROM transfers
			   WHERE status = 'published'
			   ORDER BY from_city ASC, to_city ASC`
	return r.queryTransfers(ctx, q)
}

// ListAll returns every transfer for the admin console.
func (r *TransferRepo) ListAll(ctx context.Context) ([]Transfer, error) {
	const q = `SELECT ` + transferCols + ` FROM transfers ORDER BY from_city ASC, to_city ASC`
	return r.queryTransfers(ctx, q)
}

// GetByID retrieves a transfer by primary key.
func (r *TransferRepo) GetByID(ctx context.Context, id uint64) (*Transfer, error) {
	const q = `SELECT ` + transferCols + ` FROM transfers WHERE id = ?`
	var t Transfer
	if err := scanTransfer(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransferNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a transfer and reloads DB defaults onto the struct.
func (r *TransferRepo) Create(ctx context.Context, t *Transfer) error {
	const q = `INSERT INTO transfers (from_city, to_city, vehicle_type, max_passengers, price_cents,
			   currency, description, image_url, status)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.FromCity, t.ToCity, t.VehicleType, t.MaxPassengers,
		t.PriceCents, t.Currency, t.Description, t.ImageURL, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT ` + transferCols + ` FROM transfers WHERE id = ?`
	return scanTransfer(r.db.QueryRowContext(ctx, sel, t.ID), t)
}

// Update rewrites a transfer by primary key and reloads it.
func (r *TransferRepo) Update(ctx context.Context, t *Transfer) error {
	const q = `UPDATE transfers SET from_city = ?, to_city = ?, vehicle_type = ?, max_passengers = ?,
			   price_cents = ?, currency = ?, description = ?, image_url = ?, status = ?
			   WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, t.FromCity, t.ToCity, t.VehicleType, t.MaxPassengers,
		t.PriceCents, t.Currency, t.Description, t.ImageURL, t.Status, t.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + transferCols + ` FROM transfers WHERE id = ?`
	if err := scanTransfer(r.db.QueryRowContext(ctx, sel, t.ID), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransferNotFound
		}
		return err
	}
	return nil
}

// Delete removes a transfer together with its booking requests.
func (r *TransferRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, `DELETE FROM transfer_bookings WHERE transfer_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM transfers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrTransferNotFound
		return err
	}
	return nil
}

// CreateBooking files a transfer booking request.
func (r *TransferRepo) CreateBooking(ctx context.Context, b *TransferBooking) error {
	const q = `INSERT INTO transfer_bookings
			   (transfer_id, user_id, full_name, phone, email, pickup_date, passengers, notes)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.TransferID, b.UserID, b.FullName, b.Phone,
		b.Email, b.PickupDate, b.Passengers, b.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT tb.id, tb.transfer_id, tb.user_id, tb.full_name, tb.phone, tb.email,
				 DATE_FORMAT(tb.pickup_date, '%Y-%m-%d'), tb.passengers, tb.notes, tb.status, tb.created_at,
				 t.from_city, t.to_city
				 FROM transfer_bookings tb
				 JOIN transfers t ON t.id = tb.transfer_id
				 WHERE tb.id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(
		&b.ID, &b.TransferID, &b.UserID, &b.FullName, &b.Phone, &b.Email,
		&b.PickupDate, &b.Passengers, &b.Notes, &b.Status, &b.CreatedAt, &b.FromCity, &b.ToCity,
	)
}

// ListBookings returns all transfer bookings for the admin console,
// newest first, with the route labels joined.
func (r *TransferRepo) ListBookings(ctx context.Context) ([]TransferBooking, error) {
	const q = `SELECT tb.id, tb.transfer_id, tb.user_id, tb.full_name, tb.phone, tb.email,
			   DATE_FORMAT(tb.pickup_date, '%Y-%m-%d'), tb.passengers, tb.notes, tb.status, tb.created_at,
			   t.from_city, t.to_city
			   FROM transfer_bookings tb
			   JOIN transfers t ON t.id = tb.transfer_id
			   ORDER BY tb.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []TransferBooking
	for rows.Next() {
		var b TransferBooking
		if err := rows.Scan(
			&b.ID, &b.TransferID, &b.UserID, &b.FullName, &b.Phone, &b.Email,
			&b.PickupDate, &b.Passengers, &b.Notes, &b.Status, &b.CreatedAt, &b.FromCity, &b.ToCity,
		); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateBookingStatus marks a transfer booking as handled.
func (r *TransferRepo) UpdateBookingStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transfer_bookings SET status = ? WHERE id = ? AND status <> ?`, status, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM transfer_bookings WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTransferBookingNotFound
		}
		return err
	}
	return nil
}
