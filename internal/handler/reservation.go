package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// ReservationPublisher announces reservation state changes.  A nil
// publisher turns publishing off.
type ReservationPublisher interface {
	PublishReservationConfirmed(ctx context.Context, r model.Reservation) error
	PublishReservationCancelled(ctx context.Context, r model.Reservation) error
}

// ReservationHandler serves direct room bookings.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Publisher    ReservationPublisher
}

func NewReservationHandler(r *repository.ReservationRepo, p ReservationPublisher) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Publisher: p}
}

type createReservationReq struct {
	RoomID          uint64     `json:"room_id" validate:"required"`
	UserID          uint64     `json:"user_id"`
	CheckInDate     model.Date `json:"check_in_date" validate:"required"`
	CheckOutDate    model.Date `json:"check_out_date" validate:"required,afterdate=CheckInDate"`
	NumberOfGuests  int        `json:"number_of_guests" validate:"gte=0"`
	SpecialRequests string     `json:"special_requests" validate:"max=1000"`
}

type updateReservationReq struct {
	Status          *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	NumberOfGuests  *int    `json:"number_of_guests" validate:"omitempty,gte=1"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=1000"`
}

// publish runs after the transaction committed.  It outlives the request so
// a slow broker never delays the response.
func publish(ctx context.Context, p ReservationPublisher, confirmed bool, rs ...model.Reservation) {
	if p == nil || len(rs) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		for _, r := range rs {
			if confirmed {
				_ = p.PublishReservationConfirmed(ctx, r)
			} else {
				_ = p.PublishReservationCancelled(ctx, r)
			}
		}
	}()
}

// Create handles POST /api/reservations.  Guests always book for
// themselves; a caller with reservations:manage may book on behalf of
// user_id.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return err
	}
	var req createReservationReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.UserID != 0 && req.UserID != uid {
		if !can(c, policy.ReservationsManage) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		uid = req.UserID
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.CreateForRoom(ctx, repository.NewReservation{
		RoomID:          req.RoomID,
		UserID:          uid,
		CheckIn:         req.CheckInDate,
		CheckOut:        req.CheckOutDate,
		Guests:          req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return err
	}
	publish(ctx, h.Publisher, true, res)
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /api/reservations?status=&user_id=&room_id=.
func (h *ReservationHandler) List(c echo.Context) error {
	f := repository.ReservationFilter{
		Status: c.QueryParam("status"),
		Page:   pageParams(c),
	}
	f.UserID, _ = strconv.ParseUint(c.QueryParam("user_id"), 10, 64)
	f.RoomID, _ = strconv.ParseUint(c.QueryParam("room_id"), 10, 64)
	if f.Status != "" && !model.ValidReservationStatus(f.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	list, total, err := h.Reservations.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return paged(c, list, total, f.Page)
}

// ListByUser handles GET /api/reservations/user/:userId.
func (h *ReservationHandler) ListByUser(c echo.Context) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	if err := ownerOr(c, userID, policy.ReservationsRead); err != nil {
		return err
	}
	p := pageParams(c)
	list, total, err := h.Reservations.ListByUser(c.Request().Context(), userID, p)
	if err != nil {
		return err
	}
	return paged(c, list, total, p)
}

// load fetches the reservation in :id and checks the caller may act on it.
func (h *ReservationHandler) load(c echo.Context, cap policy.Capability) (model.Reservation, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return model.Reservation{}, err
	}
	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		return res, err
	}
	return res, ownerOr(c, res.UserID, cap)
}

// Get handles GET /api/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	res, err := h.load(c, policy.ReservationsRead)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel handles PUT /api/reservations/:id/cancel and frees the room.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	res, err := h.load(c, policy.ReservationsManage)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	res, err = h.Reservations.Cancel(ctx, res.ID)
	if err != nil {
		return err
	}
	publish(ctx, h.Publisher, false, res)
	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation cancelled successfully", "reservation": res})
}

// Update handles PUT /api/reservations/:id for administrators.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req updateReservationReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	res, err := h.Reservations.Update(ctx, id, repository.ReservationPatch{
		Status:          req.Status,
		Guests:          req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return err
	}
	if req.Status != nil {
		switch *req.Status {
		case model.ReservationConfirmed:
			publish(ctx, h.Publisher, true, res)
		case model.ReservationCancelled:
			publish(ctx, h.Publisher, false, res)
		}
	}
	return c.JSON(http.StatusOK, res)
}

// QRCode handles GET /api/reservations/:id/qrcode and answers a PNG that
// front desk scanners resolve to the stay.
func (h *ReservationHandler) QRCode(c echo.Context) error {
	res, err := h.load(c, policy.ReservationsRead)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(qrPayload(res), qrcode.Medium, 256)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func qrPayload(r model.Reservation) string {
	return fmt.Sprintf("reservation:%d:room:%d:%s:%s", r.ID, r.RoomID, r.CheckInDate, r.CheckOutDate)
}
