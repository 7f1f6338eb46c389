// This file defines the Booking model and repository methods for tour
// bookings.  TotalCents is a snapshot computed at submission time
// (unit price x participants) and persisted; later changes to the
// tour's price never touch stored totals.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
)

// Booking statuses.  Unknown values are tolerated on display and fall
// into the neutral class.
const (
    BookingStatusPending   = "pending"
    BookingStatusConfirmed = "confirmed"
    BookingStatusCancelled = "cancelled"
)

// Booking mirrors a row of the `bookings` table.  TourTitle/TourSlug
// and UserEmail are read-only joined projections for list responses.
type Booking struct {
    ID           uint64    // bookings.id
    TourID       uint64    // bookings.tour_id
    UserID       uint64    // bookings.user_id
    BookingDate  string    // bookings.booking_date, calendar date "2006-01-02"
    Participants uint32    // bookings.participants (1..20)
    TotalCents   uint32    // bookings.total_cents, snapshot at creation
    Status       string    // bookings.status (pending|confirmed|cancelled)
    CreatedAt    time.Time // bookings.created_at

    TourTitle i18n.Text // tours.title, joined
    TourSlug  string    // tours.slug, joined
    UserEmail string    // users.email, joined (admin listing only)
}

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo manages persistence for bookings.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
    return &BookingRepo{db: db}
}

// Create inserts a booking.  Status defaults to pending in the DB; the
// generated ID and default fields are populated back on the struct.
func (r *BookingRepo) Create(ctx context.Context, b *Booking) error {
    const q = `INSERT INTO bookings (tour_id, user_id, booking_date, participants, total_cents)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, b.TourID, b.UserID, b.BookingDate, b.Participants, b.TotalCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    const sel = `SELECT b.id, b.tour_id, b.user_id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
                 b.participants, b.total_cents, b.status, b.created_at, t.title, t.slug
                 FROM bookings b JOIN tours t ON t.id = b.tour_id WHERE b.id = ?`
    return r.db.QueryRowContext(ctx, sel, b.ID).Scan(
        &b.ID, &b.TourID, &b.UserID, &b.BookingDate,
        &b.Participants, &b.TotalCents, &b.Status, &b.CreatedAt, &b.TourTitle, &b.TourSlug,
    )
}

// GetByID retrieves a booking with its tour projection.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*Booking, error) {
    const q = `SELECT b.id, b.tour_id, b.user_id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
               b.participants, b.total_cents, b.status, b.created_at, t.title, t.slug
               FROM bookings b JOIN tours t ON t.id = b.tour_id WHERE b.id = ?`
    var b Booking
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &b.ID, &b.TourID, &b.UserID, &b.BookingDate,
        &b.Participants, &b.TotalCents, &b.Status, &b.CreatedAt, &b.TourTitle, &b.TourSlug,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return &b, nil
}

// ListByUser returns the caller's bookings, newest first, with the tour
// title and slug joined for display.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]Booking, error) {
    const q = `SELECT b.id, b.tour_id, b.user_id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
               b.participants, b.total_cents, b.status, b.created_at, t.title, t.slug
               FROM bookings b
               JOIN tours t ON t.id = b.tour_id
               WHERE b.user_id = ?
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var result []Booking
    for rows.Next() {
        var b Booking
        if err := rows.Scan(
            &b.ID, &b.TourID, &b.UserID, &b.BookingDate,
            &b.Participants, &b.TotalCents, &b.Status, &b.CreatedAt, &b.TourTitle, &b.TourSlug,
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

// ListAll returns every booking for the admin console, newest first,
// with the tour title/slug and the booking user's email joined.
func (r *BookingRepo) ListAll(ctx context.Context) ([]Booking, error) {
    const q = `SELECT b.id, b.tour_id, b.user_id, DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
               b.participants, b.total_cents, b.status, b.created_at, t.title, t.slug, u.email
               FROM bookings b
               JOIN tours t ON t.id = b.tour_id
               JOIN users u ON u.id = b.user_id
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var result []Booking
    for rows.Next() {
        var b Booking
        if err := rows.Scan(
            &b.ID, &b.TourID, &b.UserID, &b.BookingDate,
            &b.Participants, &b.TotalCents, &b.Status, &b.CreatedAt, &b.TourTitle, &b.TourSlug, &b.UserEmail,
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

// UpdateStatus moves a booking to the given status.  It returns
// ErrBookingNotFound when the id matches nothing and ErrNoChange when
// the booking already carries that status.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    const q = `UPDATE bookings SET status = ? WHERE id = ? AND status <> ?`
    res, err := r.db.ExecContext(ctx, q, status, id, status)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n > 0 {
        return nil
    }
    var one int
    if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrBookingNotFound
        }
        return err
    }
    return ErrNoChange
}
