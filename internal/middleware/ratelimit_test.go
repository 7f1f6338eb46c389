package middleware

import (
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/config"
)

func rateKeyFor(t *testing.T, strategy string, withUser bool) string {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest("GET", "/v1/tours", nil)
    req.RemoteAddr = "203.0.113.9:4242"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/tours")
    if withUser {
        c.Set("user_id", uint64(42))
    }
    return buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: strategy}, c)
}

// TestBuildRateKeyStrategies checks the key segments each strategy
// produces.  The limiter runs before authentication, so no strategy
// may fold a user identity into the key.
func TestBuildRateKeyStrategies(t *testing.T) {
    cases := []struct {
        strategy string
        want     []string
    }{
        {"ip", []string{"rl", "ip", "203.0.113.9"}},
        {"route", []string{"rl", "route", "GET /v1/tours"}},
        {"ip_route", []string{"rl", "ip", "203.0.113.9", "route", "GET /v1/tours"}},
        {"", []string{"rl", "ip", "203.0.113.9", "route", "GET /v1/tours"}},
        {"bogus", []string{"rl", "ip", "203.0.113.9", "route", "GET /v1/tours"}},
    }
    for _, tc := range cases {
        got := rateKeyFor(t, tc.strategy, false)
        want := strings.Join(tc.want, ":")
        if got != want {
            t.Errorf("strategy %q: key = %q, want %q", tc.strategy, got, want)
        }
    }
}

// TestBuildRateKeyIgnoresIdentity checks that a user id already in the
// request context does not change the bucket key: the same client gets
// the same bucket whether or not it is logged in.
func TestBuildRateKeyIgnoresIdentity(t *testing.T) {
    anon := rateKeyFor(t, "ip_route", false)
    authed := rateKeyFor(t, "ip_route", true)
    if anon != authed {
        t.Fatalf("key changed with identity: %q vs %q", anon, authed)
    }
    if strings.Contains(authed, "42") || strings.Contains(authed, "user") {
        t.Fatalf("key carries a user segment: %q", authed)
    }
}
