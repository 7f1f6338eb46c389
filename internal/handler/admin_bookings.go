package handler

import (
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// adminBooking is a tour booking row shaped for the operator console,
// with the customer's email joined in.
type adminBooking struct {
    ID           uint64    `json:"id"`
    TourID       uint64    `json:"tour_id"`
    TourSlug     string    `json:"tour_slug"`
    TourTitle    i18n.Text `json:"tour_title"`
    UserID       uint64    `json:"user_id"`
    UserEmail    string    `json:"user_email"`
    BookingDate  string    `json:"booking_date"`
    Participants uint32    `json:"participants"`
    TotalCents   uint32    `json:"total_cents"`
    Status       string    `json:"status"`
    StatusClass  string    `json:"status_class"`
    CreatedAt    string    `json:"created_at"`
}

func adminBookingFrom(b repository.Booking) adminBooking {
    return adminBooking{
        ID:           b.ID,
        TourID:       b.TourID,
        TourSlug:     b.TourSlug,
        TourTitle:    b.TourTitle,
        UserID:       b.UserID,
        UserEmail:    b.UserEmail,
        BookingDate:  b.BookingDate,
        Participants: b.Participants,
        TotalCents:   b.TotalCents,
        Status:       b.Status,
        StatusClass:  StatusClass(b.Status),
        CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
    }
}

// ListAdminBookings handles GET /v1/admin/bookings and returns every tour
// booking, newest first.
func (h *AdminHandler) ListAdminBookings(c echo.Context) error {
    bookings, err := h.BookingRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminBooking, 0, len(bookings))
    for _, b := range bookings {
        out = append(out, adminBookingFrom(b))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateBookingStatus handles PATCH /v1/admin/bookings/:id. Operators
// confirm or cancel; setting the current status again is a no-op, not an
// error.
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    switch body.Status {
    case repository.BookingStatusPending, repository.BookingStatusConfirmed, repository.BookingStatusCancelled:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending, confirmed or cancelled"})
    }
    if err := h.BookingRepo.UpdateStatus(c.Request().Context(), id, body.Status); err != nil && err != repository.ErrNoChange {
        if err == repository.ErrBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    b, err := h.BookingRepo.GetByID(c.Request().Context(), id)
    if err != nil {
        return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status, "status_class": StatusClass(body.Status)})
    }
    return c.JSON(http.StatusOK, adminBookingFrom(*b))
}
