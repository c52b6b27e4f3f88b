package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/policy"
)

// RequireCapability aborts with 403 unless the authenticated role holds at
// least one of caps.  It must run after JWTAuth, which stores the role.
func RequireCapability(caps ...policy.Capability) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, _ := c.Get(CtxRole).(string)
            if !policy.AllowsAny(role, caps...) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
