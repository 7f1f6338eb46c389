package middleware

import (
    "context"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/repository"
)

// RoleChecker is the role-lookup dependency of the admin gate.
// *repository.RoleRepo satisfies it.
type RoleChecker interface {
    HasRole(ctx context.Context, userID uint64, role string) (bool, error)
}

// RequireAdmin returns a middleware that admits only users holding an
// `admin` row in user_roles.  The lookup runs against the database on
// every request and fails closed: a missing identity, a failed lookup
// or a missing role row all produce 403.  Until the lookup has
// succeeded the caller is not an admin.
func RequireAdmin(roles RoleChecker) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            userID, ok := contextUserID(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            isAdmin, err := roles.HasRole(c.Request().Context(), userID, repository.RoleAdmin)
            if err != nil || !isAdmin {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// contextUserID extracts the numeric user id set by JWTAuth.  JWT
// claims decode numbers as float64, so several representations are
// tolerated.
func contextUserID(c echo.Context) (uint64, bool) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, true
    case int:
        return uint64(t), true
    case int64:
        return uint64(t), true
    case float64:
        return uint64(t), true
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, true
        }
    }
    return 0, false
}
