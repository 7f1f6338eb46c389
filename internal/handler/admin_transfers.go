package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// adminTransfer is a transfer row shaped for the operator console.
type adminTransfer struct {
    ID            uint64 `json:"id"`
    FromCity      string `json:"from_city"`
    ToCity        string `json:"to_city"`
    VehicleType   string `json:"vehicle_type"`
    MaxPassengers uint32 `json:"max_passengers"`
    PriceCents    uint32 `json:"price_cents"`
    Currency      string `json:"currency"`
    Description   string `json:"description,omitempty"`
    ImageURL      string `json:"image_url,omitempty"`
    Status        string `json:"status"`
    CreatedAt     string `json:"created_at"`
}

func adminTransferFrom(t repository.Transfer) adminTransfer {
    return adminTransfer{
        ID:            t.ID,
        FromCity:      t.FromCity,
        ToCity:        t.ToCity,
        VehicleType:   t.VehicleType,
        MaxPassengers: t.MaxPassengers,
        PriceCents:    t.PriceCents,
        Currency:      t.Currency,
        Description:   t.Description.String,
        ImageURL:      t.ImageURL.String,
        Status:        t.Status,
        CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
    }
}

type transferBody struct {
    FromCity      string `json:"from_city"`
    ToCity        string `json:"to_city"`
    VehicleType   string `json:"vehicle_type"`
    MaxPassengers uint32 `json:"max_passengers"`
    PriceCents    uint32 `json:"price_cents"`
    Currency      string `json:"currency"`
    Description   string `json:"description"`
    ImageURL      string `json:"image_url"`
    Status        string `json:"status"`
}

func (b *transferBody) validate() string {
    b.FromCity = strings.TrimSpace(b.FromCity)
    b.ToCity = strings.TrimSpace(b.ToCity)
    b.VehicleType = strings.TrimSpace(b.VehicleType)
    if b.FromCity == "" || b.ToCity == "" {
        return "from_city and to_city are required"
    }
    if b.VehicleType == "" {
        return "vehicle_type is required"
    }
    if b.MaxPassengers == 0 {
        return "max_passengers must be at least 1"
    }
    if b.Currency == "" {
        b.Currency = "USD"
    }
    if b.Status == "" {
        b.Status = repository.RouteStatusPublished
    }
    if b.Status != repository.RouteStatusPublished && b.Status != repository.RouteStatusDraft {
        return "status must be published or draft"
    }
    return ""
}

func (b transferBody) toTransfer() repository.Transfer {
    t := repository.Transfer{
        FromCity:      b.FromCity,
        ToCity:        b.ToCity,
        VehicleType:   b.VehicleType,
        MaxPassengers: b.MaxPassengers,
        PriceCents:    b.PriceCents,
        Currency:      b.Currency,
        Status:        b.Status,
    }
    if d := strings.TrimSpace(b.Description); d != "" {
        t.Description = sqlNullString(d)
    }
    if u := strings.TrimSpace(b.ImageURL); u != "" {
        t.ImageURL = sqlNullString(u)
    }
    return t
}

// ListAdminTransfers handles GET /v1/admin/transfers, drafts included.
func (h *AdminHandler) ListAdminTransfers(c echo.Context) error {
    transfers, err := h.TransferRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminTransfer, 0, len(transfers))
    for _, t := range transfers {
        out = append(out, adminTransferFrom(t))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateTransfer handles POST /v1/admin/transfers.
func (h *AdminHandler) CreateTransfer(c echo.Context) error {
    var body transferBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    transfer := body.toTransfer()
    if err := h.TransferRepo.Create(c.Request().Context(), &transfer); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("transfers")
    return c.JSON(http.StatusCreated, adminTransferFrom(transfer))
}

// UpdateTransfer handles PUT /v1/admin/transfers/:id.
func (h *AdminHandler) UpdateTransfer(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body transferBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    transfer := body.toTransfer()
    transfer.ID = id
    if err := h.TransferRepo.Update(c.Request().Context(), &transfer); err != nil {
        if err == repository.ErrTransferNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("transfers")
    return c.JSON(http.StatusOK, adminTransferFrom(transfer))
}

// DeleteTransfer handles DELETE /v1/admin/transfers/:id. Its bookings go
// with it.
func (h *AdminHandler) DeleteTransfer(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.TransferRepo.Delete(c.Request().Context(), id); err != nil {
        if err == repository.ErrTransferNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("transfers")
    return c.NoContent(http.StatusNoContent)
}

// ----- transfer bookings -----

// adminTransferBooking is a transfer booking row shaped for the operator
// console.
type adminTransferBooking struct {
    ID          uint64  `json:"id"`
    TransferID  uint64  `json:"transfer_id"`
    UserID      *uint64 `json:"user_id"`
    FromCity    string  `json:"from_city"`
    ToCity      string  `json:"to_city"`
    FullName    string  `json:"full_name"`
    Phone       string  `json:"phone"`
    Email       string  `json:"email,omitempty"`
    PickupDate  string  `json:"pickup_date"`
    Passengers  uint32  `json:"passengers"`
    Notes       string  `json:"notes,omitempty"`
    Status      string  `json:"status"`
    StatusClass string  `json:"status_class"`
    CreatedAt   string  `json:"created_at"`
}

// ListTransferBookings handles GET /v1/admin/transfers/bookings, newest
// first.
func (h *AdminHandler) ListTransferBookings(c echo.Context) error {
    bookings, err := h.TransferRepo.ListBookings(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminTransferBooking, 0, len(bookings))
    for _, b := range bookings {
        item := adminTransferBooking{
            ID:          b.ID,
            TransferID:  b.TransferID,
            FromCity:    b.FromCity,
            ToCity:      b.ToCity,
            FullName:    b.FullName,
            Phone:       b.Phone,
            Email:       b.Email.String,
            PickupDate:  b.PickupDate,
            Passengers:  b.Passengers,
            Notes:       b.Notes.String,
            Status:      b.Status,
            StatusClass: StatusClass(b.Status),
            CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
        }
        if b.UserID.Valid {
            uid := uint64(b.UserID.Int64)
            item.UserID = &uid
        }
        out = append(out, item)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateTransferBookingStatus handles PATCH /v1/admin/transfers/bookings/:id.
func (h *AdminHandler) UpdateTransferBookingStatus(c echo.Context) error {
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
    if body.Status != repository.RequestStatusPending && body.Status != repository.RequestStatusDone {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending or done"})
    }
    if err := h.TransferRepo.UpdateBookingStatus(c.Request().Context(), id, body.Status); err != nil {
        if err == repository.ErrTransferBookingNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "transfer booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status, "status_class": StatusClass(body.Status)})
}
