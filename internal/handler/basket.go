package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/booking"
	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/logger"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// BasketHandler serves the caller's basket, its checkout and the staff
// basket views.
type BasketHandler struct {
	Cfg       config.Config
	Baskets   *repository.BasketRepo
	Rooms     *repository.RoomRepo
	Events    *repository.EventRepo
	Publisher ReservationPublisher
}

func NewBasketHandler(cfg config.Config, b *repository.BasketRepo, r *repository.RoomRepo, e *repository.EventRepo, p ReservationPublisher) *BasketHandler {
	return &BasketHandler{Cfg: cfg, Baskets: b, Rooms: r, Events: e, Publisher: p}
}

type addRoomReq struct {
	RoomID          uint64     `json:"room_id" validate:"required"`
	StartDate       model.Date `json:"start_date" validate:"required"`
	EndDate         model.Date `json:"end_date" validate:"required,afterdate=StartDate"`
	Guests          int        `json:"guests" validate:"gte=0"`
	SpecialRequests string     `json:"special_requests" validate:"max=1000"`
}

type addEventReq struct {
	EventID         uint64 `json:"event_id" validate:"required"`
	Quantity        int    `json:"quantity" validate:"gte=0"`
	SpecialRequests string `json:"special_requests" validate:"max=1000"`
}

type updateItemReq struct {
	Quantity        *int    `json:"quantity" validate:"omitempty,gte=1"`
	Guests          *int    `json:"guests" validate:"omitempty,gte=1"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=1000"`
}

type roomDetails struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Image string `json:"image"`
}

type eventDetails struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Image    string `json:"image"`
}

// withDetails attaches a short description of the room or event behind
// each item.  Items whose target has been deleted keep no details.
func (h *BasketHandler) withDetails(ctx context.Context, b *model.Basket) error {
	for i := range b.Items {
		it := &b.Items[i]
		switch it.ItemType {
		case model.ItemRoom:
			room, err := h.Rooms.GetByID(ctx, it.ItemID)
			if err == nil {
				it.Details = roomDetails{Name: room.Name, Type: room.Type, Image: room.Image}
			} else if !isNotFound(err) {
				return err
			}
		case model.ItemEvent:
			ev, err := h.Events.GetByID(ctx, it.ItemID)
			if err == nil {
				it.Details = eventDetails{Title: ev.Title, Location: ev.Location, Image: ev.Image}
			} else if !isNotFound(err) {
				return err
			}
		}
	}
	return nil
}

// MyBasket handles GET /api/basket/my-basket, creating the basket on first use.
func (h *BasketHandler) MyBasket(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.Baskets.GetOrCreateActive(ctx, uid, h.Cfg.BasketTTL)
	if err != nil {
		return err
	}
	if err := h.withDetails(ctx, &b); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// AddRoom handles POST /api/basket/rooms.  The room must be available and
// fit the party; the line is priced at the nightly rate times the nights.
func (h *BasketHandler) AddRoom(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	var req addRoomReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	room, err := h.Rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return err
	}
	if room.Status != model.RoomAvailable {
		return repository.ErrRoomUnavailable
	}
	guests := max(1, req.Guests)
	if guests > room.Capacity {
		return repository.ErrCapacityExceeded
	}
	quote, err := booking.QuoteStay(room.Price, req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	start, end := req.StartDate, req.EndDate
	item := model.BasketItem{
		ItemType:        model.ItemRoom,
		ItemID:          room.ID,
		Quantity:        1,
		Price:           quote.Total,
		StartDate:       &start,
		EndDate:         &end,
		Guests:          guests,
		SpecialRequests: req.SpecialRequests,
	}
	b, err := h.Baskets.AddItem(ctx, uid, &item, h.Cfg.BasketTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Room added to basket",
		"basket_item":  item,
		"basket_total": b.Total,
	})
}

// AddEvent handles POST /api/basket/events.  Tickets are priced per unit
// and the item is dated on the event day.
func (h *BasketHandler) AddEvent(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	var req addEventReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	ev, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		return err
	}
	qty := max(1, req.Quantity)
	day := ev.Date
	item := model.BasketItem{
		ItemType:        model.ItemEvent,
		ItemID:          ev.ID,
		Quantity:        qty,
		Price:           ev.Price,
		StartDate:       &day,
		Guests:          qty,
		SpecialRequests: req.SpecialRequests,
	}
	b, err := h.Baskets.AddItem(ctx, uid, &item, h.Cfg.BasketTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":      "Event added to basket",
		"basket_item":  item,
		"basket_total": b.Total,
	})
}

// UpdateItem handles PUT /api/basket/items/:itemId.
func (h *BasketHandler) UpdateItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}
	var req updateItemReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	it, err := h.Baskets.UpdateItem(c.Request().Context(), uid, itemID, repository.ItemPatch{
		Quantity:        req.Quantity,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Basket item updated", "basket_item": it})
}

// RemoveItem handles DELETE /api/basket/items/:itemId.
func (h *BasketHandler) RemoveItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "itemId")
	if err != nil {
		return err
	}
	if err := h.Baskets.RemoveItem(c.Request().Context(), uid, itemID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from basket"})
}

// Clear handles DELETE /api/basket/clear.
func (h *BasketHandler) Clear(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	if err := h.Baskets.Clear(c.Request().Context(), uid); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Basket cleared"})
}

// Confirm handles POST /api/basket/confirm: the basket is checked out into
// reservations and each reservation is announced once committed.
func (h *BasketHandler) Confirm(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	out, err := h.Baskets.ConvertToReservations(ctx, uid)
	if err != nil {
		return err
	}
	if len(out.Skipped) > 0 {
		logger.WithContext(ctx).Warn("basket items without a booking record were dropped",
			"basket_id", out.Basket.ID, "skipped", len(out.Skipped))
	}
	publish(ctx, h.Publisher, true, out.Reservations...)

	reservations := out.Reservations
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Reservations confirmed successfully",
		"reservations": reservations,
		"skipped":      len(out.Skipped),
	})
}

// List handles GET /api/basket?status=&user_id= for staff.
func (h *BasketHandler) List(c echo.Context) error {
	f := repository.BasketFilter{Status: c.QueryParam("status"), Page: pageParams(c)}
	f.UserID, _ = strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	list, total, err := h.Baskets.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return paged(c, list, total, f.Page)
}

// Get handles GET /api/basket/:id for staff.
func (h *BasketHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.Baskets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := h.withDetails(ctx, &b); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}
