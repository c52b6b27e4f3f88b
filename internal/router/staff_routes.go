package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/policy"
)

// RegisterStaff registers the front-desk endpoints: every reservation and
// basket, and the inventory.
func RegisterStaff(e *echo.Echo, h Handlers, jwtSecret string) {
	jwt := middleware.JWTAuth(jwtSecret)

	e.GET("/api/reservations", h.Reservations.List, jwt, middleware.RequireCapability(policy.ReservationsRead))

	baskets := middleware.RequireCapability(policy.BasketsRead)
	e.GET("/api/basket", h.Baskets.List, jwt, baskets)
	e.GET("/api/basket/:id", h.Baskets.Get, jwt, baskets)

	inv := e.Group("/api/inventory", jwt, middleware.RequireCapability(policy.InventoryManage))
	inv.GET("", h.Inventory.List)
	inv.GET("/:id", h.Inventory.Get)
	inv.POST("", h.Inventory.Create)
	inv.PUT("/:id", h.Inventory.Update)
	inv.DELETE("/:id", h.Inventory.Delete)
	inv.PATCH("/:id/quantity", h.Inventory.AdjustQuantity)
}
