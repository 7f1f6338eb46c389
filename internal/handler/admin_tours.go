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

// adminTour is a tour row shaped for the operator console, with localized
// fields kept in full per-language form.
type adminTour struct {
    ID           uint64    `json:"id"`
    Slug         string    `json:"slug"`
    Title        i18n.Text `json:"title"`
    Description  i18n.Text `json:"description"`
    Itinerary    i18n.Text `json:"itinerary"`
    Included     i18n.List `json:"included"`
    Excluded     i18n.List `json:"excluded"`
    PriceCents   uint32    `json:"price_cents"`
    DurationDays uint32    `json:"duration_days"`
    Images       []string  `json:"images"`
    CityID       *uint64   `json:"city_id"`
    CitySlug     string    `json:"city_slug,omitempty"`
    CreatedAt    string    `json:"created_at"`
}

func adminTourFrom(t repository.Tour) adminTour {
    out := adminTour{
        ID:           t.ID,
        Slug:         t.Slug,
        Title:        t.Title,
        Description:  t.Description,
        Itinerary:    t.Itinerary,
        Included:     t.Included,
        Excluded:     t.Excluded,
        PriceCents:   t.PriceCents,
        DurationDays: t.DurationDays,
        Images:       t.Images,
        CitySlug:     t.CitySlug.String,
        CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
    }
    if out.Images == nil {
        out.Images = []string{}
    }
    if t.CityID.Valid {
        id := uint64(t.CityID.Int64)
        out.CityID = &id
    }
    return out
}

type tourBody struct {
    Slug         string    `json:"slug"`
    Title        i18n.Text `json:"title"`
    Description  i18n.Text `json:"description"`
    Itinerary    i18n.Text `json:"itinerary"`
    Included     i18n.List `json:"included"`
    Excluded     i18n.List `json:"excluded"`
    PriceCents   uint32    `json:"price_cents"`
    DurationDays uint32    `json:"duration_days"`
    Images       []string  `json:"images"`
    CityID       *uint64   `json:"city_id"`
}

func (b *tourBody) validate() string {
    b.Slug = strings.ToLower(strings.TrimSpace(b.Slug))
    if b.Slug == "" {
        return "slug is required"
    }
    if b.Title.IsZero() {
        return "title is required"
    }
    if b.DurationDays == 0 {
        return "duration_days must be at least 1"
    }
    return ""
}

func (b tourBody) toTour() repository.Tour {
    t := repository.Tour{
        Slug:         b.Slug,
        Title:        b.Title,
        Description:  b.Description,
        Itinerary:    b.Itinerary,
        Included:     b.Included,
        Excluded:     b.Excluded,
        PriceCents:   b.PriceCents,
        DurationDays: b.DurationDays,
        Images:       b.Images,
    }
    if b.CityID != nil && *b.CityID != 0 {
        t.CityID.Int64 = int64(*b.CityID)
        t.CityID.Valid = true
    }
    return t
}

// ListAdminTours handles GET /v1/admin/tours.
func (h *AdminHandler) ListAdminTours(c echo.Context) error {
    tours, err := h.TourRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminTour, 0, len(tours))
    for _, t := range tours {
        out = append(out, adminTourFrom(t))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateTour handles POST /v1/admin/tours. A city_id pointing at a
// missing city is rejected by the foreign key and surfaced verbatim.
func (h *AdminHandler) CreateTour(c echo.Context) error {
    var body tourBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    tour := body.toTour()
    if err := h.TourRepo.Create(c.Request().Context(), &tour); err != nil {
        if strings.Contains(err.Error(), "1062") {
            return c.JSON(http.StatusConflict, echo.Map{"error": "tour slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("tours")
    return c.JSON(http.StatusCreated, adminTourFrom(tour))
}

// UpdateTour handles PUT /v1/admin/tours/:id. Editing price_cents only
// affects future bookings; stored totals are snapshots.
func (h *AdminHandler) UpdateTour(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body tourBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    tour := body.toTour()
    tour.ID = id
    if err := h.TourRepo.Update(c.Request().Context(), &tour); err != nil {
        if err == repository.ErrTourNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        }
        if strings.Contains(err.Error(), "1062") {
            return c.JSON(http.StatusConflict, echo.Map{"error": "tour slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("tours")
    return c.JSON(http.StatusOK, adminTourFrom(tour))
}

// DeleteTour handles DELETE /v1/admin/tours/:id. Tours with bookings are
// kept so booking history stays intact.
func (h *AdminHandler) DeleteTour(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.TourRepo.Delete(c.Request().Context(), id); err != nil {
        if err == repository.ErrTourNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        }
        if err == repository.ErrConflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "tour has bookings and cannot be deleted"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("tours")
    return c.NoContent(http.StatusNoContent)
}
