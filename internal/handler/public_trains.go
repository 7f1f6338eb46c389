package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/middleware"
    "github.com/davronbekm/silkroad-booking/internal/queue"
    "github.com/davronbekm/silkroad-booking/internal/repository"
    queue_publisher "github.com/davronbekm/silkroad-booking/internal/service"
)

// PublicTrainRoute represents one departure inside a schedule group.
type PublicTrainRoute struct {
    ID            uint64 `json:"id"`
    FromCity      string `json:"from_city"`
    ToCity        string `json:"to_city"`
    DepartureTime string `json:"departure_time"`
    ArrivalTime   string `json:"arrival_time"`
    OperatingDays string `json:"operating_days"`
    PriceCents    uint32 `json:"price_cents,omitempty"` // zero means price not shown
    Currency      string `json:"currency,omitempty"`
}

// PublicRouteGroup is the schedule for one train type.
type PublicRouteGroup struct {
    TrainType string             `json:"train_type"`
    Routes    []PublicTrainRoute `json:"routes"`
}

// PublicTrainTicket represents a bookable ticket offer.
type PublicTrainTicket struct {
    ID             uint64 `json:"id"`
    Route          string `json:"route"`
    TrainType      string `json:"train_type,omitempty"`
    Description    string `json:"description,omitempty"`
    DurationHours  uint32 `json:"duration_hours,omitempty"`
    PriceFromCents uint32 `json:"price_from_cents"`
}

// GetTrainRoutes returns the published schedule grouped by train type.
// Groups keep the repository ordering, so departures stay sorted by
// origin city and time inside each group.
func (h *PublicHandler) GetTrainRoutes(c echo.Context) error {
    ctx := c.Request().Context()
    routes, err := h.RouteRepo.ListPublished(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    groups := GroupRoutesByTrainType(routes)
    out := make([]PublicRouteGroup, 0, len(groups))
    for _, g := range groups {
        pg := PublicRouteGroup{TrainType: g.TrainType, Routes: make([]PublicTrainRoute, 0, len(g.Routes))}
        for _, r := range g.Routes {
            pr := PublicTrainRoute{
                ID:            r.ID,
                FromCity:      r.FromCity,
                ToCity:        r.ToCity,
                DepartureTime: r.DepartureTime,
                ArrivalTime:   r.ArrivalTime,
                OperatingDays: r.OperatingDays,
                PriceCents:    r.PriceCents,
            }
            if r.PriceCents > 0 {
                pr.Currency = r.Currency
            }
            pg.Routes = append(pg.Routes, pr)
        }
        out = append(out, pg)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetTrainTickets lists published ticket offers, localized.
func (h *PublicHandler) GetTrainTickets(c echo.Context) error {
    ctx := c.Request().Context()
    loc := middleware.RequestLocale(c)
    tickets, err := h.TicketRepo.ListPublished(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicTrainTicket, 0, len(tickets))
    for _, t := range tickets {
        out = append(out, PublicTrainTicket{
            ID:             t.ID,
            Route:          t.Route.Resolve(loc),
            TrainType:      t.TrainType.Resolve(loc),
            Description:    t.Description.Resolve(loc),
            DurationHours:  t.DurationHours,
            PriceFromCents: t.PriceFromCents,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateTicketRequest handles POST /v1/train-tickets/:id/requests. The
// route is public: guests can ask an operator to arrange a ticket without
// an account, leaving contact details instead. Nothing is charged and no
// availability is checked here; an operator follows up by phone.
func (h *PublicHandler) CreateTicketRequest(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body struct {
        FullName   string `json:"full_name"`
        Phone      string `json:"phone"`
        Email      string `json:"email"`
        TravelDate string `json:"travel_date"`
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
    if _, err := time.Parse("2006-01-02", body.TravelDate); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "travel_date must be YYYY-MM-DD"})
    }
    if body.Passengers == 0 {
        body.Passengers = 1
    }

    ctx := c.Request().Context()
    loc := middleware.RequestLocale(c)
    ticket, err := h.TicketRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrTrainTicketNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "train ticket not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    req := &repository.TicketRequest{
        TicketID:   ticket.ID,
        FullName:   body.FullName,
        Phone:      body.Phone,
        TravelDate: body.TravelDate,
        Passengers: body.Passengers,
    }
    if e := strings.TrimSpace(body.Email); e != "" {
        req.Email = sqlNullString(e)
    }
    if n := strings.TrimSpace(body.Notes); n != "" {
        req.Notes = sqlNullString(n)
    }
    if err := h.TicketRepo.CreateRequest(ctx, req); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create request"})
    }

    // notify operators off the request path
    ev := queue.TicketRequestedEvent{
        RequestID:   req.ID,
        TicketID:    ticket.ID,
        Route:       ticket.Route.Resolve(loc),
        FullName:    req.FullName,
        Phone:       req.Phone,
        Email:       req.Email.String,
        TravelDate:  req.TravelDate,
        Passengers:  req.Passengers,
        RequestedAt: req.CreatedAt.UTC().Format(time.RFC3339),
    }
    go func() {
        pctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishTicketRequested(pctx, ev)
    }()

    return c.JSON(http.StatusCreated, echo.Map{
        "id":          req.ID,
        "status":      req.Status,
        "travel_date": req.TravelDate,
        "passengers":  req.Passengers,
    })
}
