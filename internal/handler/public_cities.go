// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines handlers for the public catalog API. These
// routes let unauthenticated visitors browse cities, tours, train schedules
// and transfers. Localized fields are resolved into plain strings for the
// locale negotiated by the middleware, so clients never see the raw
// per-language objects.

package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/middleware"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces localized, sanitized responses suitable for public consumption.
type PublicHandler struct {
    CityRepo     *repository.CityRepo        // provides access to city data
    TourRepo     *repository.TourRepo        // provides access to tour data
    RouteRepo    *repository.TrainRouteRepo  // provides access to train schedules
    TicketRepo   *repository.TrainTicketRepo // provides access to train tickets and requests
    TransferRepo *repository.TransferRepo    // provides access to transfers and their bookings
}

// PublicCity represents a city exposed via the public API.
type PublicCity struct {
    ID          uint64 `json:"id"`
    Slug        string `json:"slug"`
    Name        string `json:"name"`
    Description string `json:"description,omitempty"`
    CoverImage  string `json:"cover_image,omitempty"`
}

// GetCities returns every city, localized for the request locale.
// Response JSON contains an "items" array of PublicCity.
func (h *PublicHandler) GetCities(c echo.Context) error {
    ctx := c.Request().Context()
    loc := middleware.RequestLocale(c)
    cities, err := h.CityRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicCity, 0, len(cities))
    for _, city := range cities {
        out = append(out, PublicCity{
            ID:          city.ID,
            Slug:        city.Slug,
            Name:        city.Name.Resolve(loc),
            Description: city.Description.Resolve(loc),
            CoverImage:  city.CoverImage.String,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetCity returns one city looked up by slug.
func (h *PublicHandler) GetCity(c echo.Context) error {
    ctx := c.Request().Context()
    loc := middleware.RequestLocale(c)
    city, err := h.CityRepo.GetBySlug(ctx, c.Param("slug"))
    if err != nil {
        if err == repository.ErrCityNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, PublicCity{
        ID:          city.ID,
        Slug:        city.Slug,
        Name:        city.Name.Resolve(loc),
        Description: city.Description.Resolve(loc),
        CoverImage:  city.CoverImage.String,
    })
}
