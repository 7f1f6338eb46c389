package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
    "github.com/davronbekm/silkroad-booking/internal/middleware"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// PublicTourCity is the city summary embedded in tour responses.
type PublicTourCity struct {
    Name string `json:"name"`
    Slug string `json:"slug"`
}

// PublicTour represents a tour in list responses.
type PublicTour struct {
    ID           uint64          `json:"id"`
    Slug         string          `json:"slug"`
    Title        string          `json:"title"`
    Description  string          `json:"description,omitempty"`
    PriceCents   uint32          `json:"price_cents"`
    DurationDays uint32          `json:"duration_days"`
    Images       []string        `json:"images"`
    City         *PublicTourCity `json:"city,omitempty"`
}

// PublicTourDetail extends PublicTour with the long-form fields shown on
// a tour's own page.
type PublicTourDetail struct {
    PublicTour
    Itinerary string   `json:"itinerary,omitempty"`
    Included  []string `json:"included"`
    Excluded  []string `json:"excluded"`
}

func publicTourFrom(t repository.Tour, loc i18n.Locale) PublicTour {
    out := PublicTour{
        ID:           t.ID,
        Slug:         t.Slug,
        Title:        t.Title.Resolve(loc),
        Description:  t.Description.Resolve(loc),
        PriceCents:   t.PriceCents,
        DurationDays: t.DurationDays,
        Images:       t.Images,
    }
    if out.Images == nil {
        out.Images = []string{}
    }
    if t.CityID.Valid && t.CitySlug.Valid {
        out.City = &PublicTourCity{Name: t.CityName.Resolve(loc), Slug: t.CitySlug.String}
    }
    return out
}

// cityIDForSlug finds the city whose slug matches. Matching is exact and
// case-insensitive on the already URL-safe slug.
func cityIDForSlug(cities []repository.City, slug string) (uint64, bool) {
    for _, c := range cities {
        if strings.EqualFold(c.Slug, slug) {
            return c.ID, true
        }
    }
    return 0, false
}

// GetTours lists tours, optionally filtered by the ?city=<slug> query
// parameter. An unknown city slug yields an empty list rather than an
// error, so stale links degrade gracefully.
func (h *PublicHandler) GetTours(c echo.Context) error {
    ctx := c.Request().Context()
    loc := middleware.RequestLocale(c)

    var (
        tours []repository.Tour
        err   error
    )
    if citySlug := strings.TrimSpace(c.QueryParam("city")); citySlug != "" {
        cities, cerr := h.CityRepo.ListAll(ctx)
        if cerr != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        cityID, ok := cityIDForSlug(cities, citySlug)
        if !ok {
            return c.JSON(http.StatusOK, echo.Map{"items": []PublicTour{}})
        }
        tours, err = h.TourRepo.ListByCity(ctx, cityID)
    } else {
        tours, err = h.TourRepo.List(ctx)
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    out := make([]PublicTour, 0, len(tours))
    for _, t := range tours {
        out = append(out, publicTourFrom(t, loc))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetTour returns the detail view of a single tour looked up by slug.
func (h *PublicHandler) GetTour(c echo.Context) error {
    ctx := c.Request().Context()
    loc := middleware.RequestLocale(c)
    t, err := h.TourRepo.GetBySlug(ctx, c.Param("slug"))
    if err != nil {
        if err == repository.ErrTourNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, PublicTourDetail{
        PublicTour: publicTourFrom(*t, loc),
        Itinerary:  t.Itinerary.Resolve(loc),
        Included:   t.Included.Resolve(loc),
        Excluded:   t.Excluded.Resolve(loc),
    })
}
