package middleware

import (
    "context"
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

// stubRoles is a RoleChecker with canned answers.
type stubRoles struct {
    isAdmin bool
    err     error
    calls   int
}

func (s *stubRoles) HasRole(ctx context.Context, userID uint64, role string) (bool, error) {
    s.calls++
    return s.isAdmin, s.err
}

func runAdminGate(t *testing.T, roles *stubRoles, userID interface{}) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/admin/tours", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if userID != nil {
        c.Set("user_id", userID)
    }
    h := RequireAdmin(roles)(func(c echo.Context) error {
        return c.String(http.StatusOK, "ok")
    })
    if err := h(c); err != nil {
        t.Fatalf("middleware returned error: %v", err)
    }
    return rec
}

// TestRequireAdminAllowsAdmin admits a user whose role row exists.
func TestRequireAdminAllowsAdmin(t *testing.T) {
    roles := &stubRoles{isAdmin: true}
    rec := runAdminGate(t, roles, uint64(7))
    if rec.Code != http.StatusOK {
        t.Fatalf("expected 200, got %d", rec.Code)
    }
    if roles.calls != 1 {
        t.Fatalf("expected exactly one role lookup, got %d", roles.calls)
    }
}

// TestRequireAdminRejectsNonAdmin returns 403 for a plain customer.
func TestRequireAdminRejectsNonAdmin(t *testing.T) {
    rec := runAdminGate(t, &stubRoles{isAdmin: false}, uint64(7))
    if rec.Code != http.StatusForbidden {
        t.Fatalf("expected 403, got %d", rec.Code)
    }
}

// TestRequireAdminFailsClosedOnLookupError treats a broken role lookup
// as not-admin rather than letting the request through.
func TestRequireAdminFailsClosedOnLookupError(t *testing.T) {
    rec := runAdminGate(t, &stubRoles{isAdmin: true, err: errors.New("db down")}, uint64(7))
    if rec.Code != http.StatusForbidden {
        t.Fatalf("expected 403 when the lookup fails, got %d", rec.Code)
    }
}

// TestRequireAdminRejectsMissingIdentity returns 401 when JWTAuth never
// ran.
func TestRequireAdminRejectsMissingIdentity(t *testing.T) {
    roles := &stubRoles{isAdmin: true}
    rec := runAdminGate(t, roles, nil)
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("expected 401, got %d", rec.Code)
    }
    if roles.calls != 0 {
        t.Fatal("role lookup should not run without an identity")
    }
}

// TestContextUserIDRepresentations tolerates the numeric shapes JWT
// claims decode into.
func TestContextUserIDRepresentations(t *testing.T) {
    e := echo.New()
    for _, v := range []interface{}{uint64(9), int(9), int64(9), float64(9), "9"} {
        c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
        c.Set("user_id", v)
        id, ok := contextUserID(c)
        if !ok || id != 9 {
            t.Errorf("contextUserID(%T) = (%d, %v), want (9, true)", v, id, ok)
        }
    }
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
    c.Set("user_id", "not-a-number")
    if _, ok := contextUserID(c); ok {
        t.Fatal("junk identity should not parse")
    }
}
