package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/storage"
)

// UploadImage handles POST /v1/admin/uploads. The multipart field "file"
// is stored under a fresh key and the public URL comes back for the
// operator to paste into a cover_image or images field.
func (h *AdminHandler) UploadImage(c echo.Context) error {
    if h.Images == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "uploads are not configured"})
    }
    fh, err := c.FormFile("file")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "file field is required"})
    }
    src, err := fh.Open()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read upload"})
    }
    defer src.Close()

    url, err := h.Images.Save(fh.Filename, src)
    if err != nil {
        if err == storage.ErrUnsupportedType {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image uploads are allowed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
