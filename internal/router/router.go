package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Rooms        *handler.RoomHandler
	Events       *handler.EventHandler
	Inventory    *handler.InventoryHandler
	Reservations *handler.ReservationHandler
	Baskets      *handler.BasketHandler
	Metrics      *middleware.Metrics
}

// Register wires every route group.  authLimit guards the credential
// endpoints; it is skipped when rdb is nil.
func Register(e *echo.Echo, h Handlers, jwtSecret string, authLimit config.RateLimitConfig, rdb *redis.Client) {
	RegisterRoutes(e, h)
	RegisterAuth(e, h.Auth, jwtSecret, middleware.NewTokenBucket(authLimit, rdb))
	RegisterPublic(e, h)
	RegisterCustomer(e, h, jwtSecret)
	RegisterStaff(e, h, jwtSecret)
	RegisterAdmin(e, h, jwtSecret)
}

// RegisterRoutes registers the operational endpoints: health and metrics.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", h.Health.Health)
	if h.Metrics != nil {
		e.GET("/metrics", h.Metrics.Handler())
	}
}

// RegisterAuth registers the credential endpoints under /api/auth behind
// the tighter auth rate limit, and the profile endpoints behind JWTAuth.
// Logout stays outside JWTAuth so an expired access token cannot block a
// refresh-token logout.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register, limit)
	g.POST("/login", a.Login, limit)
	g.POST("/refresh", a.Refresh, limit)
	g.POST("/refresh-access", a.RefreshAccess, limit)
	g.POST("/logout", a.Logout)

	jwt := middleware.JWTAuth(jwtSecret)
	g.GET("/profile", a.Profile, jwt)
	g.PUT("/profile", a.UpdateProfile, jwt)
	g.PUT("/change-password", a.ChangePassword, jwt)
}

// RegisterPublic registers the unauthenticated catalogue: rooms, the
// availability search and events.
func RegisterPublic(e *echo.Echo, h Handlers) {
	e.GET("/api/rooms", h.Rooms.List)
	e.GET("/api/rooms/:id", h.Rooms.Get)
	e.POST("/api/rooms/available", h.Rooms.Available)

	e.GET("/api/events", h.Events.List)
	e.GET("/api/events/:id", h.Events.Get)
}
