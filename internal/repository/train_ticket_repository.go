// This file covers train tickets and their purchase requests.  A
// TrainTicket is a sellable listing (localized route and train type, a
// "from" price); a TicketRequest is the row a visitor files with
// contact info and a travel date.  There is no availability check:
// requests are reviewed by operators out of band.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/davronbekm/silkroad-booking/internal/i18n"
)

// Request statuses shared by ticket and transfer requests.
const (
	RequestStatusPending = "pending"
	RequestStatusDone    = "done"
)

// TrainTicket mirrors a row of the `train_tickets` table.
type TrainTicket struct {
	ID             uint64    // train_tickets.id
	Route          i18n.Text // train_tickets.route (JSON), e.g. "Tashkent - Samarkand"
	TrainType      i18n.Text // train_tickets.train_type (JSON)
	Description    i18n.Text // train_tickets.description (JSON)
	DurationHours  uint32    // train_tickets.duration_hours, 0 means "not shown"
	PriceFromCents uint32    // train_tickets.price_from_cents
	Status         string    // train_tickets.status (published|draft)
	CreatedAt      time.Time // train_tickets.created_at
}

// TicketRequest mirrors a row of the `train_ticket_requests` table.
// TicketRoute is joined for the admin listing.
type TicketRequest struct {
	ID          uint64         // train_ticket_requests.id
	TicketID    uint64         // train_ticket_requests.train_ticket_id
	UserID      sql.NullInt64  // train_ticket_requests.user_id (nullable, guests allowed)
	FullName    string         // train_ticket_requests.full_name
	Phone       string         // train_ticket_requests.phone
	Email       sql.NullString // train_ticket_requests.email
	TravelDate  string         // train_ticket_requests.travel_date, "2006-01-02"
	Passengers  uint32         // train_ticket_requests.passengers
	Notes       sql.NullString // train_ticket_requests.notes
	Status      string         // train_ticket_requests.status
	CreatedAt   time.Time      // train_ticket_requests.created_at
	TicketRoute i18n.Text      // train_tickets.route, joined
}

// ErrTrainTicketNotFound indicates that no matching ticket row exists.
var ErrTrainTicketNotFound = errors.New("train ticket not found")

// ErrTicketRequestNotFound indicates that no matching request row exists.
var ErrTicketRequestNotFound = errors.New("ticket request not found")

// TrainTicketRepo manages persistence for train tickets and requests.
type TrainTicketRepo struct {
	db *sql.DB
}

// NewTrainTicketRepo constructs a TrainTicketRepo with the given DB handle.
func NewTrainTicketRepo(db *sql.DB) *TrainTicketRepo {
	return &TrainTicketRepo{db: db}
}

const ticketCols = `id, route, train_type, description, duration_hours, price_from_cents, status, created_at`

func scanTicket(row interface{ Scan(...any) error }, t *TrainTicket) error {
	return row.Scan(&t.ID, &t.Route, &t.TrainType, &t.Description, &t.DurationHours,
		&t.PriceFromCents, &t.Status, &t.CreatedAt)
}

func (r *TrainTicketRepo) queryTickets(ctx context.Context, q string, args ...any) ([]TrainTicket, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []TrainTicket
	for rows.Next() {
		var t TrainTicket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPublished returns published ticket listings, newest first.
func (r *TrainTicketRepo) ListPublished(ctx context.Context) ([]TrainTicket, error) {
	const q = `SELECT ` + ticketCols + ` FROM train_tickets
			   WHERE status = 'published' ORDER BY created_at DESC`
	return r.queryTickets(ctx, q)
}

// ListAll returns every ticket listing for the admin console.
func (r *TrainTicketRepo) ListAll(ctx context.Context) ([]TrainTicket, error) {
	const q = `SELECT ` + ticketCols + ` FROM train_tickets ORDER BY created_at DESC`
	return r.queryTickets(ctx, q)
}

// GetByID retrieves a ticket listing by primary key.
func (r *TrainTicketRepo) GetByID(ctx context.Context, id uint64) (*TrainTicket, error) {
	const q = `SELECT ` + ticketCols + ` FROM train_tickets WHERE id = ?`
	var t TrainTicket
	if err := scanTicket(r.db.QueryRowContext(ctx, q, id), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a ticket listing and reloads DB defaults.
func (r *TrainTicketRepo) Create(ctx context.Context, t *TrainTicket) error {
	const q = `INSERT INTO train_tickets (route, train_type, description, duration_hours, price_from_cents, status)
			   VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Route, t.TrainType, t.Description, t.DurationHours, t.PriceFromCents, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT ` + ticketCols + ` FROM train_tickets WHERE id = ?`
	return scanTicket(r.db.QueryRowContext(ctx, sel, t.ID), t)
}

// Update rewrites a ticket listing by primary key and reloads it.
func (r *TrainTicketRepo) Update(ctx context.Context, t *TrainTicket) error {
	const q = `UPDATE train_tickets SET route = ?, train_type = ?, description = ?, duration_hours = ?,
			   price_from_cents = ?, status = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, t.Route, t.TrainType, t.Description, t.DurationHours,
		t.PriceFromCents, t.Status, t.ID); err != nil {
		return err
	}
	const sel = `SELECT ` + ticketCols + ` FROM train_tickets WHERE id = ?`
	if err := scanTicket(r.db.QueryRowContext(ctx, sel, t.ID), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTrainTicketNotFound
		}
		return err
	}
	return nil
}

// Delete removes a ticket listing together with its requests.
func (r *TrainTicketRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, `DELETE FROM train_ticket_requests WHERE train_ticket_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM train_tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrTrainTicketNotFound
		return err
	}
	return nil
}

// CreateRequest files a purchase request for a ticket listing.
func (r *TrainTicketRepo) CreateRequest(ctx context.Context, req *TicketRequest) error {
	const q = `INSERT INTO train_ticket_requests
			   (train_ticket_id, user_id, full_name, phone, email, travel_date, passengers, notes)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, req.TicketID, req.UserID, req.FullName, req.Phone,
		req.Email, req.TravelDate, req.Passengers, req.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	const sel = `SELECT r.id, r.train_ticket_id, r.user_id, r.full_name, r.phone, r.email,
				 DATE_FORMAT(r.travel_date, '%Y-%m-%d'), r.passengers, r.notes, r.status, r.created_at, t.route
				 FROM train_ticket_requests r
				 JOIN train_tickets t ON t.id = r.train_ticket_id
				 WHERE r.id = ?`
	return r.db.QueryRowContext(ctx, sel, req.ID).Scan(
		&req.ID, &req.TicketID, &req.UserID, &req.FullName, &req.Phone, &req.Email,
		&req.TravelDate, &req.Passengers, &req.Notes, &req.Status, &req.CreatedAt, &req.TicketRoute,
	)
}

// ListRequests returns all ticket requests for the admin console,
// newest first, with the ticket route joined.
func (r *TrainTicketRepo) ListRequests(ctx context.Context) ([]TicketRequest, error) {
	const q = `SELECT r.id, r.train_ticket_id, r.user_id, r.full_name, r.phone, r.email,
			   DATE_FORMAT(r.travel_date, '%Y-%m-%d'), r.passengers, r.notes, r.status, r.created_at, t.route
			   FROM train_ticket_requests r
			   JOIN train_tickets t ON t.id = r.train_ticket_id
			   ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []TicketRequest
	for rows.Next() {
		var req TicketRequest
		if err := rows.Scan(
			&req.ID, &req.TicketID, &req.UserID, &req.FullName, &req.Phone, &req.Email,
			&req.TravelDate, &req.Passengers, &req.Notes, &req.Status, &req.CreatedAt, &req.TicketRoute,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateRequestStatus marks a request row as handled (or pending
// again).  Setting the status it already has is not an error.
func (r *TrainTicketRepo) UpdateRequestStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE train_ticket_requests SET status = ? WHERE id = ? AND status <> ?`, status, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	if err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM train_ticket_requests WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTicketRequestNotFound
		}
		return err
	}
	return nil
}
