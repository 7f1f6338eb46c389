package handler

import (
    "math"
    "testing"
    "time"

    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// TestValidParticipants checks the per-booking group size bounds.
func TestValidParticipants(t *testing.T) {
    cases := []struct {
        n    uint32
        want bool
    }{
        {0, false},
        {1, true},
        {20, true},
        {21, false},
    }
    for _, tc := range cases {
        if got := validParticipants(tc.n); got != tc.want {
            t.Errorf("validParticipants(%d) = %v, want %v", tc.n, got, tc.want)
        }
    }
}

// TestParseBookingDate checks format validation and the not-in-the-past
// rule, including the today boundary.
func TestParseBookingDate(t *testing.T) {
    now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
    cases := []struct {
        name string
        raw  string
        want string
        ok   bool
    }{
        {"today is allowed", "2026-08-30", "2026-08-30", true},
        {"future date", "2026-09-15", "2026-09-15", true},
        {"yesterday rejected", "2026-08-29", "", false},
        {"bad format", "30/08/2026", "", false},
        {"not a date", "soonish", "", false},
        {"empty", "", "", false},
    }
    for _, tc := range cases {
        got, ok := parseBookingDate(tc.raw, now)
        if ok != tc.ok || got != tc.want {
            t.Errorf("%s: parseBookingDate(%q) = (%q, %v), want (%q, %v)", tc.name, tc.raw, got, ok, tc.want, tc.ok)
        }
    }
}

// TestTotalCents verifies price snapshots multiply correctly and that
// overflowing products are refused.
func TestTotalCents(t *testing.T) {
    if got, ok := totalCents(50000, 4); !ok || got != 200000 {
        t.Fatalf("totalCents(50000, 4) = (%d, %v), want (200000, true)", got, ok)
    }
    if got, ok := totalCents(0, 10); !ok || got != 0 {
        t.Fatalf("totalCents(0, 10) = (%d, %v), want (0, true)", got, ok)
    }
    if _, ok := totalCents(math.MaxUint32, 2); ok {
        t.Fatal("expected overflow to be rejected")
    }
}

// TestBookingViewStatusClasses ensures customer booking rows carry the
// matching display class for each status.
func TestBookingViewStatusClasses(t *testing.T) {
    for status, want := range map[string]string{
        repository.BookingStatusPending:   StatusClassNeutral,
        repository.BookingStatusConfirmed: StatusClassPositive,
        repository.BookingStatusCancelled: StatusClassNegative,
    } {
        if got := StatusClass(status); got != want {
            t.Errorf("StatusClass(%q) = %q, want %q", status, got, want)
        }
    }
}
