package middleware // reusable HTTP middleware for the booking API

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/logger"
    "github.com/iliyamo/hotel-booking/internal/utils"
)

// Context keys set by JWTAuth.
const (
    CtxUserID = "user_id" // uint64
    CtxRole   = "role"    // string
    CtxEmail  = "email"   // string
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the caller's id, role and email in the Echo context.  The user id is
// also attached to the request context so every log line written while
// serving the request carries it.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header is "Bearer <jwt>"; anything else is unauthenticated.
            auth := c.Request().Header.Get(echo.HeaderAuthorization)
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access token required"})
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
            }

            c.Set(CtxUserID, claims.UserID)
            c.Set(CtxRole, claims.Role)
            c.Set(CtxEmail, claims.Email)

            req := c.Request()
            c.SetRequest(req.WithContext(logger.ContextWithUserID(req.Context(), claims.UserID)))
            return next(c)
        }
    }
}
