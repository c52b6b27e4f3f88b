package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/logger"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// InventoryHandler manages stocked items (staff and admin).
type InventoryHandler struct {
	Items *repository.InventoryRepo
}

func NewInventoryHandler(r *repository.InventoryRepo) *InventoryHandler {
	return &InventoryHandler{Items: r}
}

type inventoryReq struct {
	Name        *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *string      `json:"category" validate:"omitempty,max=50"`
	Quantity    *int         `json:"quantity" validate:"omitempty,gte=0"`
	Unit        *string      `json:"unit" validate:"omitempty,max=20"`
	MinQuantity *int         `json:"min_quantity" validate:"omitempty,gte=0"`
	Price       *model.Money `json:"price" validate:"omitempty,gte=0"`
	Supplier    *string      `json:"supplier"`
}

func (r inventoryReq) apply(i *model.InventoryItem) {
	if r.Name != nil {
		i.Name = *r.Name
	}
	if r.Category != nil {
		i.Category = *r.Category
	}
	if r.Quantity != nil {
		i.Quantity = *r.Quantity
	}
	if r.Unit != nil {
		i.Unit = *r.Unit
	}
	if r.MinQuantity != nil {
		i.MinQuantity = *r.MinQuantity
	}
	if r.Price != nil {
		i.Price = *r.Price
	}
	if r.Supplier != nil {
		i.Supplier = *r.Supplier
	}
}

// List handles GET /api/inventory?category=&low_stock=true.
func (h *InventoryHandler) List(c echo.Context) error {
	f := repository.InventoryFilter{Category: c.QueryParam("category"), Page: pageParams(c)}
	if low := boolParam(c, "low_stock"); low != nil {
		f.LowStock = *low
	}
	items, total, err := h.Items.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return paged(c, items, total, f.Page)
}

func (h *InventoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Create(c echo.Context) error {
	var req inventoryReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Name == nil || req.Category == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and category are required"})
	}
	var item model.InventoryItem
	req.apply(&item)
	if err := h.Items.Create(c.Request().Context(), &item); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req inventoryReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	item, err := h.Items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	req.apply(&item)
	if err := h.Items.Update(ctx, &item); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Items.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type quantityReq struct {
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Operation string `json:"operation" validate:"required"`
}

// AdjustQuantity handles PATCH /api/inventory/:id/quantity with
// {quantity, operation: add|subtract}.
func (h *InventoryHandler) AdjustQuantity(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req quantityReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	item, err := h.Items.AdjustQuantity(ctx, id, req.Quantity, req.Operation)
	if err != nil {
		return err
	}
	if item.LowStock() {
		logger.WithContext(ctx).Warn("inventory low", "item_id", item.ID, "quantity", item.Quantity, "min_quantity", item.MinQuantity)
	}
	return c.JSON(http.StatusOK, item)
}
