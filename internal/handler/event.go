package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// EventHandler serves hotel events.
type EventHandler struct {
	Events *repository.EventRepo
}

func NewEventHandler(r *repository.EventRepo) *EventHandler { return &EventHandler{Events: r} }

type eventReq struct {
	Title       *string      `json:"title" validate:"omitempty,min=1,max=150"`
	Description *string      `json:"description"`
	Date        *model.Date  `json:"date"`
	Time        *string      `json:"time" validate:"omitempty,datetime=15:04"`
	Location    *string      `json:"location" validate:"omitempty,max=150"`
	Capacity    *int         `json:"capacity" validate:"omitempty,gte=0"`
	Price       *model.Money `json:"price" validate:"omitempty,gte=0"`
	Image       *string      `json:"image"`
	Featured    *bool        `json:"featured"`
}

func (r eventReq) apply(e *model.Event) {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
	if r.Time != nil {
		e.Time = *r.Time
	}
	if r.Location != nil {
		e.Location = *r.Location
	}
	if r.Capacity != nil {
		e.Capacity = *r.Capacity
	}
	if r.Price != nil {
		e.Price = *r.Price
	}
	if r.Image != nil {
		e.Image = *r.Image
	}
	if r.Featured != nil {
		e.Featured = *r.Featured
	}
}

// List handles GET /api/events?featured=&date=YYYY-MM-DD.
func (h *EventHandler) List(c echo.Context) error {
	f := repository.EventFilter{Featured: boolParam(c, "featured"), Page: pageParams(c)}
	if raw := c.QueryParam("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		f.Date = &d
	}
	events, total, err := h.Events.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return paged(c, events, total, f.Page)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

// Create handles POST /api/events; title, date and price are required.
func (h *EventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Title == nil || req.Date == nil || req.Date.IsZero() || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, date and price are required"})
	}
	var ev model.Event
	req.apply(&ev)
	if err := h.Events.Create(c.Request().Context(), &ev); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req eventReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	req.apply(&ev)
	if err := h.Events.Update(ctx, &ev); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
