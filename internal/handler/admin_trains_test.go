package handler

import (
    "encoding/json"
    "strings"
    "testing"
    "time"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// TestAdminTrainRouteJSONKeys checks that the console projection of a
// train route serializes with the same snake_case keys the request
// bodies use, not the Go field names.
func TestAdminTrainRouteJSONKeys(t *testing.T) {
    route := repository.TrainRoute{
        ID:            7,
        TrainType:     "Afrosiyob",
        FromCity:      "Tashkent",
        ToCity:        "Samarkand",
        DepartureTime: "08:00",
        ArrivalTime:   "10:10",
        OperatingDays: "Daily",
        PriceCents:    900000,
        Currency:      "UZS",
        Status:        repository.RouteStatusPublished,
        CreatedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
    }
    b, err := json.Marshal(adminTrainRouteFrom(route))
    if err != nil {
        t.Fatalf("marshal returned error: %v", err)
    }
    s := string(b)
    for _, key := range []string{`"id"`, `"train_type"`, `"from_city"`, `"to_city"`,
        `"departure_time"`, `"arrival_time"`, `"operating_days"`, `"price_cents"`,
        `"currency"`, `"status"`, `"created_at"`} {
        if !strings.Contains(s, key) {
            t.Errorf("route JSON missing key %s: %s", key, s)
        }
    }
    if strings.Contains(s, `"FromCity"`) || strings.Contains(s, `"ID"`) {
        t.Errorf("route JSON leaks Go field names: %s", s)
    }
}

// TestAdminTrainTicketJSONKeys checks the same for tickets, including
// that localized fields keep their full per-locale form so the console
// can edit every language.
func TestAdminTrainTicketJSONKeys(t *testing.T) {
    ticket := repository.TrainTicket{
        ID:             3,
        Route:          i18n.Text{ByLocale: map[i18n.Locale]string{i18n.LocaleEN: "Tashkent - Bukhara", i18n.LocaleRU: "Ташкент - Бухара"}},
        TrainType:      i18n.Text{Plain: "Sharq"},
        DurationHours:  6,
        PriceFromCents: 1200000,
        Status:         repository.RouteStatusDraft,
        CreatedAt:      time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
    }
    b, err := json.Marshal(adminTrainTicketFrom(ticket))
    if err != nil {
        t.Fatalf("marshal returned error: %v", err)
    }
    s := string(b)
    for _, key := range []string{`"id"`, `"route"`, `"train_type"`, `"duration_hours"`,
        `"price_from_cents"`, `"status"`, `"created_at"`} {
        if !strings.Contains(s, key) {
            t.Errorf("ticket JSON missing key %s: %s", key, s)
        }
    }
    if !strings.Contains(s, `"ru"`) {
        t.Errorf("ticket JSON lost per-locale route form: %s", s)
    }
}

// TestAdminTransferJSONKeys checks the transfer console projection.
func TestAdminTransferJSONKeys(t *testing.T) {
    tr := repository.Transfer{
        ID:            5,
        FromCity:      "Tashkent Airport",
        ToCity:        "City Center",
        VehicleType:   "Sedan",
        MaxPassengers: 3,
        PriceCents:    150000,
        Currency:      "UZS",
        Status:        repository.RouteStatusPublished,
        CreatedAt:     time.Date(2026, 8, 3, 14, 0, 0, 0, time.UTC),
    }
    b, err := json.Marshal(adminTransferFrom(tr))
    if err != nil {
        t.Fatalf("marshal returned error: %v", err)
    }
    s := string(b)
    for _, key := range []string{`"id"`, `"from_city"`, `"to_city"`, `"vehicle_type"`,
        `"max_passengers"`, `"price_cents"`, `"currency"`, `"status"`, `"created_at"`} {
        if !strings.Contains(s, key) {
            t.Errorf("transfer JSON missing key %s: %s", key, s)
        }
    }
    if strings.Contains(s, `"MaxPassengers"`) {
        t.Errorf("transfer JSON leaks Go field names: %s", s)
    }
}
