package middleware

import (
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-booking/internal/logger"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = echo.HeaderXRequestID

// RequestID reuses an incoming X-Request-ID or generates one, echoes it on
// the response and stores it in the request context for logger.WithContext.
func RequestID() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            id := req.Header.Get(HeaderRequestID)
            if id == "" || len(id) > 128 {
                id = logger.NewRequestID()
            }
            c.Response().Header().Set(HeaderRequestID, id)
            c.SetRequest(req.WithContext(logger.ContextWithRequestID(req.Context(), id)))
            return next(c)
        }
    }
}

// RequestLogger writes one structured line per request.  Server errors log
// at error level, client errors at warn, the rest at info.
func RequestLogger() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                // Let the central error handler write the response first so
                // the logged status is the one the client sees.
                c.Error(err)
            }

            req := c.Request()
            status := c.Response().Status
            fields := []any{
                "method", req.Method,
                "path", req.URL.Path,
                "route", c.Path(),
                "status_code", status,
                "latency_ms", time.Since(start).Milliseconds(),
                "client_ip", c.RealIP(),
                "user_agent", req.UserAgent(),
            }
            if id, ok := UserID(c); ok {
                fields = append(fields, "user_id", id)
            }
            if err != nil {
                fields = append(fields, "error", err.Error())
            }

            l := logger.WithContext(req.Context())
            switch {
            case status >= 500:
                l.Error("request failed", fields...)
            case status >= 400:
                l.Warn("request rejected", fields...)
            default:
                l.Info("request completed", fields...)
            }
            return nil
        }
    }
}
