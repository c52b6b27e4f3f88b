package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/policy"
)

// RegisterCustomer registers the self-service endpoints every signed-in
// user has: booking rooms, managing their reservations and their basket.
// Ownership of a reservation is checked in the handler.
func RegisterCustomer(e *echo.Echo, h Handlers, jwtSecret string) {
	guard := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireCapability(policy.BookingSelf),
	}

	r := e.Group("/api/reservations", guard...)
	r.POST("", h.Reservations.Create)
	r.GET("/user/:userId", h.Reservations.ListByUser)
	r.GET("/:id", h.Reservations.Get)
	r.PUT("/:id/cancel", h.Reservations.Cancel)
	r.GET("/:id/qrcode", h.Reservations.QRCode)

	b := e.Group("/api/basket", guard...)
	b.GET("/my-basket", h.Baskets.MyBasket)
	b.POST("/rooms", h.Baskets.AddRoom)
	b.POST("/events", h.Baskets.AddEvent)
	b.PUT("/items/:itemId", h.Baskets.UpdateItem)
	b.DELETE("/items/:itemId", h.Baskets.RemoveItem)
	b.DELETE("/clear", h.Baskets.Clear)
	b.POST("/confirm", h.Baskets.Confirm)
}
