package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-booking/internal/booking"
	"github.com/iliyamo/hotel-booking/internal/model"
)

// ReservationRepo owns the reservations table and the room status
// transitions that go with it.  Every multi-row change runs in a single
// transaction with the room row locked, so a reservation and its room can
// never disagree.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = "id, room_id, user_id, check_in_date, check_out_date, number_of_guests, total_price_cents, status, special_requests, created_at, updated_at"

func scanReservation(s scanner) (model.Reservation, error) {
	var m model.Reservation
	err := s.Scan(&m.ID, &m.RoomID, &m.UserID, &m.CheckInDate, &m.CheckOutDate, &m.NumberOfGuests,
		&m.TotalPrice, &m.Status, &m.SpecialRequests, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// NewReservation is the input of a direct room booking.
type NewReservation struct {
	RoomID          uint64
	UserID          uint64
	CheckIn         model.Date
	CheckOut        model.Date
	Guests          int
	SpecialRequests string
}

// CreateForRoom books a room: the room must exist, be available and fit the
// party.  The total is the nightly price times the number of nights.  The
// reservation is inserted as confirmed and the room flipped to occupied in
// the same transaction.
func (r *ReservationRepo) CreateForRoom(ctx context.Context, in NewReservation) (model.Reservation, error) {
	if _, err := booking.Nights(in.CheckIn, in.CheckOut); err != nil {
		return model.Reservation{}, err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	room, err := getRoom(ctx, tx, in.RoomID, true)
	if err != nil {
		return model.Reservation{}, err
	}
	res, err := bookRoomTx(ctx, tx, room, in)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// bookRoomTx validates a locked room against in, inserts the confirmed
// reservation and marks the room occupied.
func bookRoomTx(ctx context.Context, tx *sql.Tx, room model.Room, in NewReservation) (model.Reservation, error) {
	if room.Status != model.RoomAvailable {
		return model.Reservation{}, ErrRoomUnavailable
	}
	if in.Guests < 1 {
		in.Guests = 1
	}
	if in.Guests > room.Capacity {
		return model.Reservation{}, ErrCapacityExceeded
	}
	quote, err := booking.QuoteStay(room.Price, in.CheckIn, in.CheckOut)
	if err != nil {
		return model.Reservation{}, err
	}
	m := model.Reservation{
		RoomID:          room.ID,
		UserID:          in.UserID,
		CheckInDate:     in.CheckIn,
		CheckOutDate:    in.CheckOut,
		NumberOfGuests:  in.Guests,
		TotalPrice:      quote.Total,
		Status:          model.ReservationConfirmed,
		SpecialRequests: in.SpecialRequests,
	}
	if err := insertReservation(ctx, tx, &m); err != nil {
		return model.Reservation{}, err
	}
	if err := setRoomStatus(ctx, tx, room.ID, model.RoomOccupied); err != nil {
		return model.Reservation{}, err
	}
	return m, nil
}

func insertReservation(ctx context.Context, q dbtx, m *model.Reservation) error {
	res, err := q.ExecContext(ctx,
		`INSERT INTO reservations (room_id, user_id, check_in_date, check_out_date, number_of_guests, total_price_cents, status, special_requests)
		 VALUES (?,?,?,?,?,?,?,?)`,
		m.RoomID, m.UserID, m.CheckInDate, m.CheckOutDate, m.NumberOfGuests, int64(m.TotalPrice), m.Status, m.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	m.ID = uint64(id)
	m.CreatedAt, m.UpdatedAt = now, now
	return nil
}

// Cancel marks a reservation cancelled and releases its room.  Cancelling
// twice yields ErrAlreadyCancelled.
func (r *ReservationRepo) Cancel(ctx context.Context, id uint64) (model.Reservation, error) {
	status := model.ReservationCancelled
	return r.Update(ctx, id, ReservationPatch{Status: &status})
}

// ReservationPatch lists the fields an update may change; nil leaves a field as is.
type ReservationPatch struct {
	Status          *string
	Guests          *int
	SpecialRequests *string
}

// Update applies p under a row lock.  Moving a reservation to cancelled or
// completed releases the room; moving it back to confirmed occupies the
// room again, which requires the room to be available.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, p ReservationPatch) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	m, err := getReservation(ctx, tx, id, true)
	if err != nil {
		return m, err
	}
	prev := m.Status
	if p.Status != nil {
		if *p.Status == model.ReservationCancelled && prev == model.ReservationCancelled {
			return m, ErrAlreadyCancelled
		}
		m.Status = *p.Status
	}
	if p.Guests != nil {
		m.NumberOfGuests = *p.Guests
	}
	if p.SpecialRequests != nil {
		m.SpecialRequests = *p.SpecialRequests
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status = ?, number_of_guests = ?, special_requests = ? WHERE id = ?",
		m.Status, m.NumberOfGuests, m.SpecialRequests, m.ID); err != nil {
		return m, err
	}

	if roomStatus, ok := roomTransition(prev, m.Status); ok {
		if roomStatus == model.RoomOccupied {
			room, err := getRoom(ctx, tx, m.RoomID, true)
			if err != nil {
				return m, err
			}
			if room.Status != model.RoomAvailable {
				return m, ErrRoomUnavailable
			}
		}
		if err := setRoomStatus(ctx, tx, m.RoomID, roomStatus); err != nil {
			return m, err
		}
	}

	if err := tx.Commit(); err != nil {
		return m, err
	}
	committed = true
	m.UpdatedAt = time.Now().UTC()
	return m, nil
}

// roomTransition returns the room status implied by a reservation moving
// from prev to next, if the room has to change at all.  Pending and
// confirmed reservations both hold their room.
func roomTransition(prev, next string) (string, bool) {
	holds := func(s string) bool { return s == model.ReservationConfirmed || s == model.ReservationPending }
	switch {
	case holds(prev) && !holds(next):
		return model.RoomAvailable, true
	case !holds(prev) && holds(next):
		return model.RoomOccupied, true
	}
	return "", false
}

// GetByID returns ErrReservationNotFound when no row matches.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	return getReservation(ctx, r.db, id, false)
}

func getReservation(ctx context.Context, q dbtx, id uint64, forUpdate bool) (model.Reservation, error) {
	query := "SELECT " + reservationColumns + " FROM reservations WHERE id = ?"
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := scanReservation(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrReservationNotFound
	}
	return m, err
}

// ReservationFilter narrows List.  Zero values disable a filter.
type ReservationFilter struct {
	Status string
	UserID uint64
	RoomID uint64
	Page
}

// List returns reservations newest first.
func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]model.Reservation, int64, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.UserID != 0 {
		w.add("user_id = ?", f.UserID)
	}
	if f.RoomID != 0 {
		w.add("room_id = ?", f.RoomID)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations"+w.String()+" ORDER BY id DESC LIMIT ? OFFSET ?",
		append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

// ListByUser returns every reservation of one user, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, p Page) ([]model.Reservation, int64, error) {
	return r.List(ctx, ReservationFilter{UserID: userID, Page: p})
}
