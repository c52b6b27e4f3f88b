package middleware

// identity.go holds the helpers that read the caller set by JWTAuth.  Rate
// limit keys fall back to "anon" when no token has been verified yet.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id and whether one is present.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(CtxUserID).(uint64)
    return id, ok && id != 0
}

// Role returns the authenticated role, or "" before JWTAuth.
func Role(c echo.Context) string {
    r, _ := c.Get(CtxRole).(string)
    return r
}

func currentUserID(c echo.Context) string {
    if id, ok := UserID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
