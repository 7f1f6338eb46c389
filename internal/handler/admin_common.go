package handler // handler package contains admin console handlers

import (
    "context" // context bounds cache invalidation calls
    "time"    // time provides the invalidation timeout

    "github.com/davronbekm/silkroad-booking/internal/middleware" // middleware owns the cache invalidator
    "github.com/davronbekm/silkroad-booking/internal/repository" // repository holds the data access layer
    "github.com/davronbekm/silkroad-booking/internal/storage"    // storage persists uploaded images
)

// AdminHandler bundles everything the operator console needs: the full
// repository set, the response-cache invalidator and the image store.
// Role checks happen in middleware before any of these methods run.
type AdminHandler struct {
    CityRepo     *repository.CityRepo        // city persistence
    TourRepo     *repository.TourRepo        // tour persistence
    RouteRepo    *repository.TrainRouteRepo  // train schedule persistence
    TicketRepo   *repository.TrainTicketRepo // train ticket and request persistence
    TransferRepo *repository.TransferRepo    // transfer and transfer booking persistence
    BookingRepo  *repository.BookingRepo     // tour booking persistence
    Cache        *middleware.Invalidator     // drops cached public listings after writes
    Images       *storage.ImageStore         // stores admin uploads
}

// NewAdminHandler constructs an AdminHandler and panics if any repository
// is nil. Cache and Images may be nil when Redis or the upload dir are
// not configured.
func NewAdminHandler(city *repository.CityRepo, tour *repository.TourRepo, route *repository.TrainRouteRepo,
    ticket *repository.TrainTicketRepo, transfer *repository.TransferRepo, booking *repository.BookingRepo,
    cache *middleware.Invalidator, images *storage.ImageStore) *AdminHandler {
    if city == nil || tour == nil || route == nil || ticket == nil || transfer == nil || booking == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{
        CityRepo:     city,
        TourRepo:     tour,
        RouteRepo:    route,
        TicketRepo:   ticket,
        TransferRepo: transfer,
        BookingRepo:  booking,
        Cache:        cache,
        Images:       images,
    }
}

// invalidate drops the cached public listings for the given collections
// after a successful write. Runs in the background so a slow or down
// Redis never delays the admin response.
func (h *AdminHandler) invalidate(collections ...string) {
    if h.Cache == nil {
        return
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        h.Cache.Invalidate(ctx, collections...)
    }()
}
