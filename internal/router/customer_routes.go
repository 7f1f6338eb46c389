package router

import (
	"github.com/labstack/echo/v4"

	"github.com/davronbekm/silkroad-booking/internal/handler"
	"github.com/davronbekm/silkroad-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT; there is no role gate here because any
// signed-in account may book tours and list its own bookings.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
	)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.MyBookings)
}
