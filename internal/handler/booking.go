package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/davronbekm/silkroad-booking/internal/middleware"
	"github.com/davronbekm/silkroad-booking/internal/queue"
	"github.com/davronbekm/silkroad-booking/internal/repository"
	queue_publisher "github.com/davronbekm/silkroad-booking/internal/service"
)

// BookingStore is the slice of the booking repository the customer
// endpoints need.
type BookingStore interface {
	Create(ctx context.Context, b *repository.Booking) error
	ListByUser(ctx context.Context, userID uint64) ([]repository.Booking, error)
}

// TourStore resolves the tour a booking is priced against.
type TourStore interface {
	GetByID(ctx context.Context, id uint64) (*repository.Tour, error)
}

// CustomerHandler groups repositories required to create and list tour
// bookings on behalf of signed-in customers. All methods assume that JWT
// authentication has already been performed by middleware and may return
// 401 Unauthorized if the user ID cannot be extracted from the context.
type CustomerHandler struct {
	BookingRepo BookingStore // access to bookings
	TourRepo    TourStore    // access to tours for price snapshots
}

// NewCustomerHandler constructs a new CustomerHandler with the provided
// repositories. All dependencies must be non-nil.
func NewCustomerHandler(bookingRepo BookingStore, tourRepo TourStore) *CustomerHandler {
	if bookingRepo == nil || tourRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{BookingRepo: bookingRepo, TourRepo: tourRepo}
}

// maxParticipants caps one booking's group size.
const maxParticipants = 20

// validParticipants reports whether a requested group size is bookable.
func validParticipants(n uint32) bool {
	return n >= 1 && n <= maxParticipants
}

// parseBookingDate validates a requested tour date. The date must be a
// calendar date in YYYY-MM-DD form and must not be before today in UTC.
// It returns the normalized date string.
func parseBookingDate(raw string, now time.Time) (string, bool) {
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", false
	}
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return "", false
	}
	return d.Format("2006-01-02"), true
}

// totalCents computes the booking total from the per-participant price.
// The total is snapshotted on the booking row, so later price edits never
// change what an existing booking owes. A second return of false means
// the product does not fit the column.
func totalCents(priceCents uint32, participants uint32) (uint32, bool) {
	total := uint64(priceCents) * uint64(participants)
	if total > math.MaxUint32 {
		return 0, false
	}
	return uint32(total), true
}

// bookingView is a booking row shaped for customer responses.
type bookingView struct {
	ID           uint64 `json:"id"`
	TourSlug     string `json:"tour_slug"`
	TourTitle    string `json:"tour_title"`
	BookingDate  string `json:"booking_date"`
	Participants uint32 `json:"participants"`
	TotalCents   uint32 `json:"total_cents"`
	Status       string `json:"status"`
	StatusClass  string `json:"status_class"`
	CreatedAt    string `json:"created_at"`
}

func bookingViewFrom(b repository.Booking, c echo.Context) bookingView {
	loc := middleware.RequestLocale(c)
	return bookingView{
		ID:           b.ID,
		TourSlug:     b.TourSlug,
		TourTitle:    b.TourTitle.Resolve(loc),
		BookingDate:  b.BookingDate,
		Participants: b.Participants,
		TotalCents:   b.TotalCents,
		Status:       b.Status,
		StatusClass:  StatusClass(b.Status),
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateBooking handles POST /v1/bookings. The booking starts out pending
// and stores the total at today's tour price; there is no capacity limit
// on a tour beyond the per-booking participant cap.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		TourID       uint64 `json:"tour_id"`
		BookingDate  string `json:"booking_date"`
		Participants uint32 `json:"participants"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TourID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tour_id is required"})
	}
	if !validParticipants(body.Participants) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participants must be between 1 and 20"})
	}
	date, ok := parseBookingDate(body.BookingDate, time.Now())
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_date must be a future date in YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	tour, err := h.TourRepo.GetByID(ctx, body.TourID)
	if err != nil {
		if err == repository.ErrTourNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	total, ok := totalCents(tour.PriceCents, body.Participants)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking total out of range"})
	}

	b := &repository.Booking{
		TourID:       tour.ID,
		UserID:       userID,
		BookingDate:  date,
		Participants: body.Participants,
		TotalCents:   total,
	}
	if err := h.BookingRepo.Create(ctx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}

	ev := queue.BookingCreatedEvent{
		BookingID:    b.ID,
		UserID:       userID,
		TourID:       tour.ID,
		TourSlug:     b.TourSlug,
		TourTitle:    b.TourTitle.Resolve(middleware.RequestLocale(c)),
		BookingDate:  b.BookingDate,
		Participants: b.Participants,
		TotalCents:   b.TotalCents,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCreated(pctx, ev)
	}()

	return c.JSON(http.StatusCreated, bookingViewFrom(*b, c))
}

// MyBookings handles GET /v1/bookings and returns the caller's bookings,
// newest first.
func (h *CustomerHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]bookingView, 0, len(items))
	for _, b := range items {
		out = append(out, bookingViewFrom(b, c))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
