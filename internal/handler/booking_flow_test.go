package handler

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// fakeTourStore serves tours from a map and lets a test edit prices
// between requests.
type fakeTourStore struct {
    tours map[uint64]repository.Tour
}

func (f *fakeTourStore) GetByID(ctx context.Context, id uint64) (*repository.Tour, error) {
    t, ok := f.tours[id]
    if !ok {
        return nil, repository.ErrTourNotFound
    }
    cp := t
    return &cp, nil
}

// fakeBookingStore keeps bookings in memory, filling the joined tour
// columns at creation time the same way the INSERT-then-reselect does.
type fakeBookingStore struct {
    tours  *fakeTourStore
    nextID uint64
    rows   []repository.Booking
}

func (f *fakeBookingStore) Create(ctx context.Context, b *repository.Booking) error {
    f.nextID++
    b.ID = f.nextID
    b.Status = repository.BookingStatusPending
    b.CreatedAt = time.Now().UTC()
    if t, ok := f.tours.tours[b.TourID]; ok {
        b.TourSlug = t.Slug
        b.TourTitle = t.Title
    }
    f.rows = append(f.rows, *b)
    return nil
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID uint64) ([]repository.Booking, error) {
    out := []repository.Booking{}
    for i := len(f.rows) - 1; i >= 0; i-- {
        if f.rows[i].UserID == userID {
            out = append(out, f.rows[i])
        }
    }
    return out, nil
}

// TestBookingTotalSurvivesPriceChange books a tour at one price, raises
// the tour price afterwards, and re-reads the booking: the stored total
// must still reflect the price at booking time.
func TestBookingTotalSurvivesPriceChange(t *testing.T) {
    tours := &fakeTourStore{tours: map[uint64]repository.Tour{
        1: {ID: 1, Slug: "registan-classic", Title: i18n.Text{Plain: "Registan Classic"}, PriceCents: 10000},
    }}
    store := &fakeBookingStore{tours: tours}
    h := NewCustomerHandler(store, tours)
    e := echo.New()

    date := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
    body := fmt.Sprintf(`{"tour_id":1,"booking_date":%q,"participants":2}`, date)
    req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(7))

    if err := h.CreateBooking(c); err != nil {
        t.Fatalf("CreateBooking returned error: %v", err)
    }
    if rec.Code != http.StatusCreated {
        t.Fatalf("CreateBooking status = %d, body %s", rec.Code, rec.Body.String())
    }
    var created bookingView
    if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
        t.Fatalf("decode create response: %v", err)
    }
    if created.TotalCents != 20000 {
        t.Fatalf("created total = %d, want 20000", created.TotalCents)
    }

    // operator edits the tour price after the booking exists
    tour := tours.tours[1]
    tour.PriceCents = 99900
    tours.tours[1] = tour

    req2 := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
    rec2 := httptest.NewRecorder()
    c2 := e.NewContext(req2, rec2)
    c2.Set("user_id", uint64(7))

    if err := h.MyBookings(c2); err != nil {
        t.Fatalf("MyBookings returned error: %v", err)
    }
    if rec2.Code != http.StatusOK {
        t.Fatalf("MyBookings status = %d, body %s", rec2.Code, rec2.Body.String())
    }
    var listing struct {
        Items []bookingView `json:"items"`
    }
    if err := json.Unmarshal(rec2.Body.Bytes(), &listing); err != nil {
        t.Fatalf("decode listing: %v", err)
    }
    if len(listing.Items) != 1 {
        t.Fatalf("listing has %d items, want 1", len(listing.Items))
    }
    if got := listing.Items[0].TotalCents; got != 20000 {
        t.Fatalf("total after price edit = %d, want 20000", got)
    }
    if listing.Items[0].TourSlug != "registan-classic" {
        t.Errorf("tour_slug = %q, want %q", listing.Items[0].TourSlug, "registan-classic")
    }
}
