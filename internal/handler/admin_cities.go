package handler // handler package contains admin city handlers

import (
    "net/http" // http provides status code constants
    "strconv"  // strconv parses string identifiers to numeric types
    "strings"  // strings offers trimming utilities
    "time"     // time formats created_at timestamps

    "github.com/labstack/echo/v4" // echo is the web framework used for handlers

    "github.com/davronbekm/silkroad-booking/internal/i18n"       // i18n holds localized value types
    "github.com/davronbekm/silkroad-booking/internal/repository" // repository holds database models
)

// adminCity is a city row shaped for the operator console: localized
// fields stay in their full per-language form so both translations are
// editable.
type adminCity struct {
    ID          uint64    `json:"id"`
    Slug        string    `json:"slug"`
    Name        i18n.Text `json:"name"`
    Description i18n.Text `json:"description"`
    CoverImage  string    `json:"cover_image,omitempty"`
    CreatedAt   string    `json:"created_at"`
}

func adminCityFrom(c repository.City) adminCity {
    return adminCity{
        ID:          c.ID,
        Slug:        c.Slug,
        Name:        c.Name,
        Description: c.Description,
        CoverImage:  c.CoverImage.String,
        CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
    }
}

type cityBody struct {
    Slug        string    `json:"slug"`
    Name        i18n.Text `json:"name"`
    Description i18n.Text `json:"description"`
    CoverImage  string    `json:"cover_image"`
}

func (b *cityBody) validate() string { // returns an error message or ""
    b.Slug = strings.ToLower(strings.TrimSpace(b.Slug))
    if b.Slug == "" {
        return "slug is required"
    }
    if b.Name.IsZero() {
        return "name is required"
    }
    return ""
}

func (b cityBody) toCity() repository.City {
    c := repository.City{Slug: b.Slug, Name: b.Name, Description: b.Description}
    if img := strings.TrimSpace(b.CoverImage); img != "" {
        c.CoverImage = sqlNullString(img)
    }
    return c
}

// ListAdminCities handles GET /v1/admin/cities and returns every city in
// editable form.
func (h *AdminHandler) ListAdminCities(c echo.Context) error {
    cities, err := h.CityRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    out := make([]adminCity, 0, len(cities))
    for _, city := range cities {
        out = append(out, adminCityFrom(city))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// CreateCity handles POST /v1/admin/cities.
func (h *AdminHandler) CreateCity(c echo.Context) error {
    var body cityBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    city := body.toCity()
    if err := h.CityRepo.Create(c.Request().Context(), &city); err != nil {
        if strings.Contains(err.Error(), "1062") { // duplicate slug
            return c.JSON(http.StatusConflict, echo.Map{"error": "city slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("cities", "tours")
    return c.JSON(http.StatusCreated, adminCityFrom(city))
}

// UpdateCity handles PUT /v1/admin/cities/:id.
func (h *AdminHandler) UpdateCity(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var body cityBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if msg := body.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    city := body.toCity()
    city.ID = id
    if err := h.CityRepo.Update(c.Request().Context(), &city); err != nil {
        if err == repository.ErrCityNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
        }
        if strings.Contains(err.Error(), "1062") {
            return c.JSON(http.StatusConflict, echo.Map{"error": "city slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("cities", "tours")
    return c.JSON(http.StatusOK, adminCityFrom(city))
}

// DeleteCity handles DELETE /v1/admin/cities/:id. Tours referencing the
// city are detached, not deleted.
func (h *AdminHandler) DeleteCity(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    if err := h.CityRepo.Delete(c.Request().Context(), id); err != nil {
        if err == repository.ErrCityNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    h.invalidate("cities", "tours")
    return c.NoContent(http.StatusNoContent)
}
