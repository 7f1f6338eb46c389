package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/davronbekm/silkroad-booking/internal/i18n"
)

// localeKey is the context key the resolved request locale is stored
// under.
const localeKey = "locale"

// Locale returns a middleware resolving the display language for each
// request: an explicit ?lang query value wins, then the
// Accept-Language header, then English.  Handlers read the result via
// RequestLocale and pass it explicitly into every i18n resolve call.
func Locale() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            loc := i18n.Match(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language"))
            c.Set(localeKey, loc)
            return next(c)
        }
    }
}

// RequestLocale returns the locale resolved by Locale, defaulting to
// English when the middleware did not run.
func RequestLocale(c echo.Context) i18n.Locale {
    if loc, ok := c.Get(localeKey).(i18n.Locale); ok {
        return loc
    }
    return i18n.DefaultLocale
}
