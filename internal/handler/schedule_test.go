package handler

import (
    "testing"

    "github.com/davronbekm/silkroad-booking/internal/repository"
)

func route(trainType, from, to, dep string) repository.TrainRoute {
    return repository.TrainRoute{TrainType: trainType, FromCity: from, ToCity: to, DepartureTime: dep}
}

// TestGroupRoutesByTrainType verifies that groups appear in first-seen
// order and that no route is lost, duplicated or reordered inside its
// group.
func TestGroupRoutesByTrainType(t *testing.T) {
    routes := []repository.TrainRoute{
        route("Afrosiyob", "Tashkent", "Samarkand", "07:30"),
        route("Afrosiyob", "Tashkent", "Bukhara", "08:00"),
        route("Sharq", "Tashkent", "Samarkand", "09:05"),
        route("Afrosiyob", "Samarkand", "Tashkent", "17:00"),
        route("Night Train", "Tashkent", "Khiva", "20:30"),
    }

    groups := GroupRoutesByTrainType(routes)

    wantOrder := []string{"Afrosiyob", "Sharq", "Night Train"}
    if len(groups) != len(wantOrder) {
        t.Fatalf("expected %d groups, got %d", len(wantOrder), len(groups))
    }
    for i, g := range groups {
        if g.TrainType != wantOrder[i] {
            t.Errorf("group %d = %q, want %q", i, g.TrainType, wantOrder[i])
        }
    }

    if n := len(groups[0].Routes); n != 3 {
        t.Fatalf("expected 3 Afrosiyob departures, got %d", n)
    }
    wantDeps := []string{"07:30", "08:00", "17:00"}
    for i, r := range groups[0].Routes {
        if r.DepartureTime != wantDeps[i] {
            t.Errorf("Afrosiyob departure %d = %q, want %q", i, r.DepartureTime, wantDeps[i])
        }
    }

    total := 0
    for _, g := range groups {
        total += len(g.Routes)
    }
    if total != len(routes) {
        t.Fatalf("grouping changed route count: %d != %d", total, len(routes))
    }
}

// TestGroupRoutesByTrainTypeEmpty ensures an empty list yields an empty,
// non-nil slice.
func TestGroupRoutesByTrainTypeEmpty(t *testing.T) {
    groups := GroupRoutesByTrainType(nil)
    if groups == nil {
        t.Fatal("expected empty slice, got nil")
    }
    if len(groups) != 0 {
        t.Fatalf("expected no groups, got %d", len(groups))
    }
}

// TestStatusClass maps every known status plus an unknown one.
func TestStatusClass(t *testing.T) {
    cases := []struct {
        status string
        want   string
    }{
        {repository.BookingStatusConfirmed, StatusClassPositive},
        {repository.RequestStatusDone, StatusClassPositive},
        {repository.BookingStatusCancelled, StatusClassNegative},
        {repository.BookingStatusPending, StatusClassNeutral},
        {"on_hold", StatusClassNeutral},
        {"", StatusClassNeutral},
    }
    for _, tc := range cases {
        if got := StatusClass(tc.status); got != tc.want {
            t.Errorf("StatusClass(%q) = %q, want %q", tc.status, got, tc.want)
        }
    }
}
