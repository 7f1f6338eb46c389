package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/davronbekm/silkroad-booking/internal/handler"    // admin console handlers
	"github.com/davronbekm/silkroad-booking/internal/middleware" // JWT + role middlewares
)

// RegisterAdmin registers operator-scoped endpoints under /v1/admin.
// Every route requires a valid JWT and an admin row in user_roles; the
// role is checked against the database on each request, so revoking it
// takes effect immediately.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string, roles middleware.RoleChecker) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireAdmin(roles),
	)

	// ---- Cities ----
	g.GET("/cities", a.ListAdminCities)
	g.POST("/cities", a.CreateCity)
	g.PUT("/cities/:id", a.UpdateCity)
	g.PATCH("/cities/:id", a.UpdateCity) // allow partial/semantic updates via PATCH as well
	g.DELETE("/cities/:id", a.DeleteCity)

	// ---- Tours ----
	g.GET("/tours", a.ListAdminTours)
	g.POST("/tours", a.CreateTour)
	g.PUT("/tours/:id", a.UpdateTour)
	g.PATCH("/tours/:id", a.UpdateTour)
	g.DELETE("/tours/:id", a.DeleteTour)

	// ---- Train routes ----
	g.GET("/train-routes", a.ListAdminTrainRoutes)
	g.POST("/train-routes", a.CreateTrainRoute)
	g.PUT("/train-routes/:id", a.UpdateTrainRoute)
	g.DELETE("/train-routes/:id", a.DeleteTrainRoute)

	// ---- Train tickets and their requests ----
	// The static /requests segment is registered alongside /:id; echo
	// prefers the static match so both can coexist.
	g.GET("/train-tickets", a.ListAdminTrainTickets)
	g.POST("/train-tickets", a.CreateTrainTicket)
	g.PUT("/train-tickets/:id", a.UpdateTrainTicket)
	g.DELETE("/train-tickets/:id", a.DeleteTrainTicket)
	g.GET("/train-tickets/requests", a.ListTicketRequests)
	g.PATCH("/train-tickets/requests/:id", a.UpdateTicketRequestStatus)

	// ---- Transfers and their bookings ----
	g.GET("/transfers", a.ListAdminTransfers)
	g.POST("/transfers", a.CreateTransfer)
	g.PUT("/transfers/:id", a.UpdateTransfer)
	g.DELETE("/transfers/:id", a.DeleteTransfer)
	g.GET("/transfers/bookings", a.ListTransferBookings)
	g.PATCH("/transfers/bookings/:id", a.UpdateTransferBookingStatus)

	// ---- Tour bookings ----
	g.GET("/bookings", a.ListAdminBookings)
	g.PATCH("/bookings/:id", a.UpdateBookingStatus)

	// ---- Uploads ----
	g.POST("/uploads", a.UploadImage)
}
