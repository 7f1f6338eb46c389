package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/queue"
    "github.com/davronbekm/silkroad-booking/internal/repository"
    queue_publisher "github.com/davronbekm/silkroad-booking/internal/service"
)

// PublicTransfer represents a transfer offer in list responses.
type PublicTransfer struct {
    ID            uint64 `json:"id"`
    FromCity      string `json:"from_city"`
    ToCity        string `json:"to_city"`
    VehicleType   string `json:"vehicle_type"`
    MaxPassengers uint32 `json:"max_passengers"`
    PriceCents    uint32 `json:"price_cents"`
    Currency      string `json:"currency"`
    Description   string `json:"description,omitempty"`
    ImageURL      string `json:"image_url,omitempty"`
}

// GetTransfers lists published transfer offers.
func (h *PublicHandler) GetTransfers(c echo.Context) error {
    ctx := c.Request().Context()
    transfers, err := h.TransferRepo.ListPublished(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicTransfer, 0, len(transfers))
    for _, t := range transfers {
        out = append(out, PublicTransfer{
            ID:            t.ID,
            FromCity:      t.FromCity,
            ToCity:        t.ToCity,
            VehicleType:   t.VehicleType,
            MaxPassengers: t.MaxPassengers,
            PriceCents:    t.PriceCents,
            Currency:      t.Currency,
            Description:   t.Description.String,
            ImageURL:      t.ImageURL.String,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateTransferBooking handles POST /v1/transfers/:id/bookings. Like
// ticket requests, the route is public and records contact details for an
// operator callback; pickup capacity is checked against the vehicle limit
// but nothing is charged.
func (h *PublicHandler) CreateTransferBooking(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        FullName   string `json:"full_name"`
        Phone      string `json:"phone"`
        Email      string `json:"email"`
        PickupDate string `json:"pickup_date"`
        Passengers uint32 `json:"passengers"`
        Notes      string `json:"notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    body.FullName = strings.TrimSpace(body.FullName)
    body.Phone = strings.TrimSpace(body.Phone)
    if body.FullName == "" || body.Phone == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name and phone are required"})
    }
    if _, err := time.Parse("2006-01-02", body.PickupDate); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "pickup_date must be YYYY-MM-DD"})
    }
    if body.Passengers == 0 {
        body.Passengers = 1
    }

    ctx := c.Request().Context()
    transfer, err := h.TransferRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrTransferNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if body.Passengers > transfer.MaxPassengers {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "too many passengers for this vehicle"})
    }

    b := &repository.TransferBooking{
        TransferID: transfer.ID,
        FullName:   body.FullName,
        Phone:      body.Phone,
        PickupDate: body.PickupDate,
        Passengers: body.Passengers,
    }
    if e := strings.TrimSpace(body.Email); e != "" {
        b.Email = sqlNullString(e)
    }
    if n := strings.TrimSpace(body.Notes); n != "" {
        b.Notes = sqlNullString(n)
    }
    if err := h.TransferRepo.CreateBooking(ctx, b); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
    }

    ev := queue.TransferBookedEvent{
        BookingID:   b.ID,
        TransferID:  transfer.ID,
        FromCity:    transfer.FromCity,
        ToCity:      transfer.ToCity,
        FullName:    b.FullName,
        Phone:       b.Phone,
        PickupDate:  b.PickupDate,
        Passengers:  b.Passengers,
        RequestedAt: b.CreatedAt.UTC().Format(time.RFC3339),
    }
    go func() {
        pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishTransferBooked(pctx, ev)
    }()

    return c.JSON(http.StatusCreated, echo.Map{
        "id":          b.ID,
        "status":      b.Status,
        "pickup_date": b.PickupDate,
        "passengers":  b.Passengers,
    })
}
