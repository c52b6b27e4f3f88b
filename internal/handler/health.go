package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
)

// HealthHandler reports liveness plus the state of the database and Redis.
type HealthHandler struct {
    DB    *sql.DB
    Redis *redis.Client // optional
}

// Health answers 200 while the database answers a ping, 503 otherwise.
// Redis is informational since the API runs without it.
func (h *HealthHandler) Health(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
    defer cancel()

    status, code := "ok", http.StatusOK
    checks := echo.Map{"database": "ok", "redis": "disabled"}
    if h.DB != nil {
        if err := h.DB.PingContext(ctx); err != nil {
            checks["database"] = "down"
            status, code = "degraded", http.StatusServiceUnavailable
        }
    }
    if h.Redis != nil {
        checks["redis"] = "ok"
        if err := h.Redis.Ping(ctx).Err(); err != nil {
            checks["redis"] = "down"
        }
    }
    return c.JSON(code, echo.Map{"status": status, "checks": checks, "time": time.Now().UTC()})
}
