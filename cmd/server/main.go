package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/davronbekm/silkroad-booking/internal/config"     // Internal config loader
	"github.com/davronbekm/silkroad-booking/internal/database"   // MySQL pool setup
	"github.com/davronbekm/silkroad-booking/internal/handler"    // HTTP handlers
	"github.com/davronbekm/silkroad-booking/internal/middleware" // Locale, cache and rate limit middleware
	"github.com/davronbekm/silkroad-booking/internal/queue"      // Operator notification consumer
	"github.com/davronbekm/silkroad-booking/internal/repository" // Data access layer
	"github.com/davronbekm/silkroad-booking/internal/router"     // Route registration
	"github.com/davronbekm/silkroad-booking/internal/storage"    // Upload store
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the listing cache and the rate limiter; both degrade to
	// pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	roles := repository.NewRoleRepo(db)
	cities := repository.NewCityRepo(db)
	tours := repository.NewTourRepo(db)
	routes := repository.NewTrainRouteRepo(db)
	tickets := repository.NewTrainTicketRepo(db)
	transfers := repository.NewTransferRepo(db)
	bookings := repository.NewBookingRepo(db)

	images, err := storage.NewImageStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens, roles)
	publicH := &handler.PublicHandler{
		CityRepo:     cities,
		TourRepo:     tours,
		RouteRepo:    routes,
		TicketRepo:   tickets,
		TransferRepo: transfers,
	}
	customerH := handler.NewCustomerHandler(bookings, tours)
	adminH := handler.NewAdminHandler(cities, tours, routes, tickets, transfers, bookings,
		middleware.NewInvalidator(cacheCfg, rdb), images)

	e := echo.New() // Create Echo instance
	e.Use(middleware.Locale())
	e.Use(middleware.NewTokenBucket(rlCfg, rdb))

	router.RegisterRoutes(e, cfg.UploadDir)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, middleware.NewListingCache(cacheCfg, rdb))
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, roles)

	// Operator notifications are consumed in the background; the loop
	// reconnects on its own and never takes the server down.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
