package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// ----- train routes -----

// adminTrainRoute is a route row shaped for the operator console.
type adminTrainRoute struct {
    ID            uint64 `json:"id"`
    TrainType     string `json:"train_type"`
    FromCity      string `json:"from_city"`
    ToCity        string `json:"to_city"`
    DepartureTime string `json:"departure_time"`
    ArrivalTime   string `json:"arrival_time"`
    OperatingDays string `json:"operating_days"`
    PriceCents    uint32 `json:"price_cents"`
    Currency      string `json:"currency,omitempty"`
    Status        string `json:"status"`
    CreatedAt     string `json:"created_at"`
}

func adminTrainRouteFrom(r repository.TrainRoute) adminTrainRoute {
    return adminTrainRoute{
        ID:            r.ID,
        TrainType:     r.TrainType,
        FromCity:      r.FromCity,
        ToCity:        r.ToCity,
        DepartureTime: r.DepartureTime,
        ArrivalTime:   r.ArrivalTime,
        OperatingDays: r.OperatingDays,
        PriceCents:    r.PriceCents,
        Currency:      r.Currency,
        Status:        r.Status,
        CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
    }
}

type routeBody struct {
    TrainType     string `json:"train_type"`
    FromCity      string `json:"from_city"`
    ToCity        string `json:"to_city"`
    DepartureTime string `json:"departure_time"`
    ArrivalTime   string `json:"arrival_time"`
    OperatingDays string `json:"operating_days"`
    PriceCents    uint32 `json:"price_cents"`
    Currency      string `json:"currency"`
    Status        string `json:"status"`
}

// validate normalizes the body in place and returns an error message or "".
func (b *routeBody) validate() string {
    b.TrainType = strings.TrimSpace(b.TrainType)
    b.FromCity = strings.TrimSpace(b.FromCity)
    b.ToCity = strings.TrimSpace(b.ToCity)
    if b.TrainType == "" || b.FromCity == "" || b.ToCity == "" {
        return "train_type, from_city and to_city are required"
    }
    for _, ts := range []string{b.DepartureTime, b.ArrivalTime} {
        if _, err := time.Parse("15:04", ts); err != nil {
            return "departure_time and arrival_time must be HH:MM"
        }
    }
    if b.OperatingDays == "" {
        b.OperatingDays = "Daily"
    }
    if b.Status == "" {
        b.Status = repository.RouteStatusPublished
    }
    if b.Status != repository.RouteStatusPublished && b.Status != repository.RouteStatusDraft {
        return "status must be published or draft"
    }
    if b.PriceCents > 0 && b.Currency == "" {
        return "currency is required when price_cents is set"
    }
    return ""
}

func (b routeBody) toRoute() repository.TrainRoute {
    return repository.TrainRoute{
        TrainType:     b.TrainType,
        FromCity:      b.FromCity,
        ToCity:        b.ToCity,
        DepartureTime: b.DepartureTime,
        ArrivalTime:   b.ArrivalTime,
        OperatingDays: b.OperatingDays,
        PriceCents:    b.PriceCents,
        Currency:      b.Currency,
        Status:        b.Status,
    }
}

// ListAdminTrainRoutes handles GET /v1/admin/train-routes, drafts included.
func (h *AdminHandler) ListAdminTrainRoutes(c echo.Context) error {
    routes, err := h.RouteRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminTrainRoute, 0, len(routes))
    for _, r := range routes {
        out = append(out, adminTrainRouteFrom(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateTrainRoute handles POST /v1/admin/train-routes.
func (h *AdminHandler) CreateTrainRoute(c echo.Context) error {
    var body routeBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    route := body.toRoute()
    if err := h.RouteRepo.Create(c.Request().Context(), &route); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("train-routes")
    return c.JSON(http.StatusCreated, adminTrainRouteFrom(route))
}

// UpdateTrainRoute handles PUT /v1/admin/train-routes/:id.
func (h *AdminHandler) UpdateTrainRoute(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body routeBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    route := body.toRoute()
    route.ID = id
    if err := h.RouteRepo.Update(c.Request().Context(), &route); err != nil {
        if err == repository.ErrTrainRouteNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("train-routes")
    return c.JSON(http.StatusOK, adminTrainRouteFrom(route))
}

// DeleteTrainRoute handles DELETE /v1/admin/train-routes/:id.
func (h *AdminHandler) DeleteTrainRoute(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.RouteRepo.Delete(c.Request().Context(), id); err != nil {
        if err == repository.ErrTrainRouteNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train route not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("train-routes")
    return c.NoContent(http.StatusNoContent)
}

// ----- train tickets -----

// adminTrainTicket is a ticket row shaped for the operator console.
// Localized fields keep their full JSON form so the console can edit
// every locale.
type adminTrainTicket struct {
    ID             uint64    `json:"id"`
    Route          i18n.Text `json:"route"`
    TrainType      i18n.Text `json:"train_type"`
    Description    i18n.Text `json:"description"`
    DurationHours  uint32    `json:"duration_hours"`
    PriceFromCents uint32    `json:"price_from_cents"`
    Status         string    `json:"status"`
    CreatedAt      string    `json:"created_at"`
}

func adminTrainTicketFrom(t repository.TrainTicket) adminTrainTicket {
    return adminTrainTicket{
        ID:             t.ID,
        Route:          t.Route,
        TrainType:      t.TrainType,
        Description:    t.Description,
        DurationHours:  t.DurationHours,
        PriceFromCents: t.PriceFromCents,
        Status:         t.Status,
        CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
    }
}

type ticketBody struct {
    Route          i18n.Text `json:"route"`
    TrainType      i18n.Text `json:"train_type"`
    Description    i18n.Text `json:"description"`
    DurationHours  uint32    `json:"duration_hours"`
    PriceFromCents uint32    `json:"price_from_cents"`
    Status         string    `json:"status"`
}

func (b *ticketBody) validate() string {
    if b.Route.IsZero() {
        return "route is required"
    }
    if b.Status == "" {
        b.Status = repository.RouteStatusPublished
    }
    if b.Status != repository.RouteStatusPublished && b.Status != repository.RouteStatusDraft {
        return "status must be published or draft"
    }
    return ""
}

func (b ticketBody) toTicket() repository.TrainTicket {
    return repository.TrainTicket{
        Route:          b.Route,
        TrainType:      b.TrainType,
        Description:    b.Description,
        DurationHours:  b.DurationHours,
        PriceFromCents: b.PriceFromCents,
        Status:         b.Status,
    }
}

// ListAdminTrainTickets handles GET /v1/admin/train-tickets.
func (h *AdminHandler) ListAdminTrainTickets(c echo.Context) error {
    tickets, err := h.TicketRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminTrainTicket, 0, len(tickets))
    for _, t := range tickets {
        out = append(out, adminTrainTicketFrom(t))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateTrainTicket handles POST /v1/admin/train-tickets.
func (h *AdminHandler) CreateTrainTicket(c echo.Context) error {
    var body ticketBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    ticket := body.toTicket()
    if err := h.TicketRepo.Create(c.Request().Context(), &ticket); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("train-tickets")
    return c.JSON(http.StatusCreated, adminTrainTicketFrom(ticket))
}

// UpdateTrainTicket handles PUT /v1/admin/train-tickets/:id.
func (h *AdminHandler) UpdateTrainTicket(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body ticketBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    ticket := body.toTicket()
    ticket.ID = id
    if err := h.TicketRepo.Update(c.Request().Context(), &ticket); err != nil {
        if err == repository.ErrTrainTicketNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train ticket not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("train-tickets")
    return c.JSON(http.StatusOK, adminTrainTicketFrom(ticket))
}

// DeleteTrainTicket handles DELETE /v1/admin/train-tickets/:id. Pending
// requests against the ticket are removed with it.
func (h *AdminHandler) DeleteTrainTicket(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.TicketRepo.Delete(c.Request().Context(), id); err != nil {
        if err == repository.ErrTrainTicketNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train ticket not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("train-tickets")
    return c.NoContent(http.StatusNoContent)
}

// ----- ticket requests -----

// adminTicketRequest is a request row shaped for the operator console.
type adminTicketRequest struct {
    ID          uint64    `json:"id"`
    TicketID    uint64    `json:"ticket_id"`
    UserID      *uint64   `json:"user_id"`
    Route       i18n.Text `json:"route"`
    FullName    string    `json:"full_name"`
    Phone       string    `json:"phone"`
    Email       string    `json:"email,omitempty"`
    TravelDate  string    `json:"travel_date"`
    Passengers  uint32    `json:"passengers"`
    Notes       string    `json:"notes,omitempty"`
    Status      string    `json:"status"`
    StatusClass string    `json:"status_class"`
    CreatedAt   string    `json:"created_at"`
}

// ListTicketRequests handles GET /v1/admin/train-tickets/requests,
// newest first.
func (h *AdminHandler) ListTicketRequests(c echo.Context) error {
    requests, err := h.TicketRepo.ListRequests(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminTicketRequest, 0, len(requests))
    for _, r := range requests {
        item := adminTicketRequest{
            ID:          r.ID,
            TicketID:    r.TicketID,
            Route:       r.TicketRoute,
            FullName:    r.FullName,
            Phone:       r.Phone,
            Email:       r.Email.String,
            TravelDate:  r.TravelDate,
            Passengers:  r.Passengers,
            Notes:       r.Notes.String,
            Status:      r.Status,
            StatusClass: StatusClass(r.Status),
            CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
        }
        if r.UserID.Valid {
            uid := uint64(r.UserID.Int64)
            item.UserID = &uid
        }
        out = append(out, item)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// UpdateTicketRequestStatus handles PATCH /v1/admin/train-tickets/requests/:id.
func (h *AdminHandler) UpdateTicketRequestStatus(c echo.Context) error {
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
    if err := h.TicketRepo.UpdateRequestStatus(c.Request().Context(), id, body.Status); err != nil {
        if err == repository.ErrTicketRequestNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket request not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": body.Status, "status_class": StatusClass(body.Status)})
}
