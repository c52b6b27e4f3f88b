package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/policy"
)

// RegisterAdmin registers catalogue management, reservation overrides and
// the user directory.
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string) {
	jwt := middleware.JWTAuth(jwtSecret)

	rooms := middleware.RequireCapability(policy.RoomsManage)
	e.POST("/api/rooms", h.Rooms.Create, jwt, rooms)
	e.PUT("/api/rooms/:id", h.Rooms.Update, jwt, rooms)
	e.DELETE("/api/rooms/:id", h.Rooms.Delete, jwt, rooms)

	events := middleware.RequireCapability(policy.EventsManage)
	e.POST("/api/events", h.Events.Create, jwt, events)
	e.PUT("/api/events/:id", h.Events.Update, jwt, events)
	e.DELETE("/api/events/:id", h.Events.Delete, jwt, events)

	e.PUT("/api/reservations/:id", h.Reservations.Update, jwt, middleware.RequireCapability(policy.ReservationsManage))

	u := e.Group("/api/users", jwt, middleware.RequireCapability(policy.UsersManage))
	u.GET("", h.Users.List)
	u.GET("/:id", h.Users.Get)
	u.POST("", h.Users.Create)
	u.PUT("/:id", h.Users.Update)
	u.DELETE("/:id", h.Users.Delete)
	u.PUT("/:id/reset-password", h.Users.ResetPassword)
}
