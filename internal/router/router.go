package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/davronbekm/silkroad-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/davronbekm/silkroad-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/davronbekm/silkroad-booking/internal/storage"    // storage names the public upload path
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the static upload
// directory. uploadDir may be empty when the image store is not
// configured.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
	if uploadDir != "" {
		// Serve admin-uploaded images from the local store.
		e.Static(storage.PublicPath, uploadDir)
	}
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login,
	// refresh.  Each handler is responsible for generating or exchanging
	// tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout does not require JWT authentication: the handler accepts either
	// a bearer token (revokes every session) or a refresh_token in the JSON
	// body (revokes one session).
	g.POST("/logout", a.Logout)

	// Protected profile endpoint.  The JWTAuth middleware runs before the
	// handler; admin status is looked up per request inside Me rather than
	// trusted from the token.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)

	// Alias kept so clients can call either /v1/auth/logout or /v1/logout.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated catalog endpoints on the
// provided Echo instance. cacheMW is the Redis listing cache; GET
// responses pass through it while the two public write endpoints are
// skipped by method. These routes apply no JWT or role middleware and
// are intended for guest visitors.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1", cacheMW)
	// Cities of the catalog, list and detail by slug.
	g.GET("/cities", p.GetCities)
	g.GET("/cities/:slug", p.GetCity)
	// Tours, optionally filtered with ?city=<slug>.
	g.GET("/tours", p.GetTours)
	g.GET("/tours/:slug", p.GetTour)
	// Train schedule grouped by train type.
	g.GET("/train-routes", p.GetTrainRoutes)
	// Ticket offers plus the public request form behind them.
	g.GET("/train-tickets", p.GetTrainTickets)
	g.POST("/train-tickets/:id/requests", p.CreateTicketRequest)
	// Transfers plus the public booking form behind them.
	g.GET("/transfers", p.GetTransfers)
	g.POST("/transfers/:id/bookings", p.CreateTransferBooking)
}
