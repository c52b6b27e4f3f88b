package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// RoomHandler serves the public room catalogue and its admin management.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(r *repository.RoomRepo) *RoomHandler { return &RoomHandler{Rooms: r} }

type roomReq struct {
	Name        *string      `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string      `json:"description"`
	Type        *string      `json:"type" validate:"omitempty,max=50"`
	Price       *model.Money `json:"price" validate:"omitempty,gte=0"`
	Capacity    *int         `json:"capacity" validate:"omitempty,gte=1"`
	Image       *string      `json:"image"`
	Status      *string      `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	Featured    *bool        `json:"featured"`
}

func (r roomReq) apply(m *model.Room) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.Price != nil {
		m.Price = *r.Price
	}
	if r.Capacity != nil {
		m.Capacity = *r.Capacity
	}
	if r.Image != nil {
		m.Image = *r.Image
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.Featured != nil {
		m.Featured = *r.Featured
	}
}

// List handles GET /api/rooms?featured=&status=&type=.
func (h *RoomHandler) List(c echo.Context) error {
	f := repository.RoomFilter{
		Featured: boolParam(c, "featured"),
		Status:   c.QueryParam("status"),
		Type:     c.QueryParam("type"),
		Page:     pageParams(c),
	}
	rooms, total, err := h.Rooms.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return paged(c, rooms, total, f.Page)
}

// Get handles GET /api/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Create handles POST /api/rooms.  Name, price and capacity are required.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Name == nil || req.Price == nil || req.Capacity == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, price and capacity are required"})
	}
	var room model.Room
	req.apply(&room)
	if err := h.Rooms.Create(c.Request().Context(), &room); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, room)
}

// Update handles PUT /api/rooms/:id; absent fields keep their value.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req roomReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return err
	}
	req.apply(&room)
	if err := h.Rooms.Update(ctx, &room); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, room)
}

// Delete handles DELETE /api/rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type availableReq struct {
	StartDate  model.Date `json:"start_date" validate:"required"`
	FinishDate model.Date `json:"finish_date" validate:"required,afterdate=StartDate"`
	PeopleNb   int        `json:"people_nb" validate:"gte=0"`
}

// Available handles POST /api/rooms/available: rooms in service that fit
// people_nb and have no confirmed stay overlapping the range.
func (h *RoomHandler) Available(c echo.Context) error {
	var req availableReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	rooms, err := h.Rooms.Available(c.Request().Context(), req.StartDate, req.FinishDate, max(1, req.PeopleNb))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": rooms})
}
