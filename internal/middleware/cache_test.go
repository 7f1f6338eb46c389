package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/config"
    "github.com/davronbekm/silkroad-booking/internal/i18n"
)

// TestCollectionFromPath derives the invalidation collection from
// registered route patterns.
func TestCollectionFromPath(t *testing.T) {
    cases := []struct {
        route string
        want  string
    }{
        {"/v1/tours", "tours"},
        {"/v1/tours/:slug", "tours"},
        {"/v1/train-routes", "train-routes"},
        {"/v1/cities/:slug", "cities"},
        {"/healthz", "healthz"},
        {"/", "misc"},
        {"", "misc"},
    }
    for _, tc := range cases {
        if got := collectionFromPath(tc.route); got != tc.want {
            t.Errorf("collectionFromPath(%q) = %q, want %q", tc.route, got, tc.want)
        }
    }
}

// TestEncodeDecodePayload round-trips status, headers and body through
// the binary cache format.
func TestEncodeDecodePayload(t *testing.T) {
    hdr := http.Header{}
    hdr.Set("Content-Type", "application/json; charset=UTF-8")
    body := []byte(`{"items":[]}`)

    payload, err := encodePayload(http.StatusOK, hdr, body)
    if err != nil {
        t.Fatalf("encodePayload returned error: %v", err)
    }
    status, gotHdr, gotBody, ok := decodePayload(payload)
    if !ok {
        t.Fatal("decodePayload rejected its own encoding")
    }
    if status != http.StatusOK {
        t.Fatalf("status = %d, want 200", status)
    }
    if gotHdr.Get("Content-Type") != "application/json; charset=UTF-8" {
        t.Fatalf("header lost: %v", gotHdr)
    }
    if string(gotBody) != string(body) {
        t.Fatalf("body = %q, want %q", gotBody, body)
    }
}

// TestDecodePayloadRejectsGarbage refuses short or corrupt blobs so a
// damaged cache entry falls through to the handler.
func TestDecodePayloadRejectsGarbage(t *testing.T) {
    for _, blob := range [][]byte{nil, {1, 2, 3}, []byte("short"), {0, 0, 0, 200, 255, 255, 255, 255}} {
        if _, _, _, ok := decodePayload(blob); ok {
            t.Errorf("decodePayload accepted %v", blob)
        }
    }
}

// TestCacheKeyVariesByLocale ensures two locales never share an entry,
// since cached bodies contain localized text.
func TestCacheKeyVariesByLocale(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache"}
    e := echo.New()

    keyFor := func(loc i18n.Locale, query string) string {
        req := httptest.NewRequest(http.MethodGet, "/v1/tours?"+query, nil)
        c := e.NewContext(req, httptest.NewRecorder())
        c.SetPath("/v1/tours")
        c.Set(localeKey, loc)
        return cacheKeyFrom(cfg, c)
    }

    en := keyFor(i18n.LocaleEN, "city=bukhara")
    ru := keyFor(i18n.LocaleRU, "city=bukhara")
    if en == ru {
        t.Fatal("keys must differ per locale")
    }
    other := keyFor(i18n.LocaleEN, "city=khiva")
    if en == other {
        t.Fatal("keys must differ per query")
    }
    if again := keyFor(i18n.LocaleEN, "city=bukhara"); again != en {
        t.Fatal("same request must produce the same key")
    }
}
