package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// BasketRepo keeps baskets and their items.  Every mutation locks the
// user's active basket row, applies the item change and moves total_cents
// by the line total difference before committing, so the total always
// equals the sum of price times quantity and concurrent edits of one basket
// serialise.
type BasketRepo struct {
	db *sql.DB
}

func NewBasketRepo(db *sql.DB) *BasketRepo { return &BasketRepo{db: db} }

const (
	basketColumns     = "id, user_id, status, total_cents, expires_at, created_at, updated_at"
	basketItemColumns = "id, basket_id, item_type, item_id, quantity, price_cents, start_date, end_date, guests, special_requests, created_at"
)

func scanBasket(s scanner) (model.Basket, error) {
	var b model.Basket
	err := s.Scan(&b.ID, &b.UserID, &b.Status, &b.Total, &b.ExpiresAt, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func scanBasketItem(s scanner) (model.BasketItem, error) {
	var (
		it         model.BasketItem
		start, end sql.NullTime
	)
	err := s.Scan(&it.ID, &it.BasketID, &it.ItemType, &it.ItemID, &it.Quantity, &it.Price,
		&start, &end, &it.Guests, &it.SpecialRequests, &it.CreatedAt)
	if err != nil {
		return it, err
	}
	if start.Valid {
		d := model.NewDate(start.Time)
		it.StartDate = &d
	}
	if end.Valid {
		d := model.NewDate(end.Time)
		it.EndDate = &d
	}
	return it, nil
}

func nullDate(d *model.Date) any {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.Time
}

// activeBasketTx locks the user's most recent active basket.
func activeBasketTx(ctx context.Context, tx *sql.Tx, userID uint64) (model.Basket, error) {
	b, err := scanBasket(tx.QueryRowContext(ctx,
		"SELECT "+basketColumns+" FROM baskets WHERE user_id = ? AND status = 'active' ORDER BY id DESC LIMIT 1 FOR UPDATE",
		userID))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBasketNotFound
	}
	return b, err
}

// liveBasketTx is activeBasketTx that also treats a lapsed basket as missing.
func liveBasketTx(ctx context.Context, tx *sql.Tx, userID uint64, now time.Time) (model.Basket, error) {
	b, err := activeBasketTx(ctx, tx, userID)
	if err == nil && !b.ExpiresAt.After(now) {
		return b, ErrBasketNotFound
	}
	return b, err
}

// ensureBasketTx returns the live active basket, creating one that expires
// after ttl when there is none.  A lapsed basket is marked expired first so
// the user never holds two active baskets.
func ensureBasketTx(ctx context.Context, tx *sql.Tx, userID uint64, ttl time.Duration) (model.Basket, error) {
	now := time.Now().UTC()
	b, err := activeBasketTx(ctx, tx, userID)
	switch {
	case err == nil && b.ExpiresAt.After(now):
		return b, nil
	case err == nil:
		if _, err := tx.ExecContext(ctx, "UPDATE baskets SET status = 'expired' WHERE id = ?", b.ID); err != nil {
			return b, err
		}
	case !errors.Is(err, ErrBasketNotFound):
		return b, err
	}

	b = model.Basket{UserID: userID, Status: model.BasketActive, ExpiresAt: now.Add(ttl), CreatedAt: now, UpdatedAt: now}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO baskets (user_id, status, total_cents, expires_at) VALUES (?, 'active', 0, ?)",
		userID, b.ExpiresAt)
	if err != nil {
		return b, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return b, err
	}
	b.ID = uint64(id)
	return b, nil
}

func basketItemsTx(ctx context.Context, q dbtx, basketID uint64) ([]model.BasketItem, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+basketItemColumns+" FROM basket_items WHERE basket_id = ? ORDER BY id", basketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.BasketItem{}
	for rows.Next() {
		it, err := scanBasketItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func basketItemTx(ctx context.Context, tx *sql.Tx, basketID, itemID uint64) (model.BasketItem, error) {
	it, err := scanBasketItem(tx.QueryRowContext(ctx,
		"SELECT "+basketItemColumns+" FROM basket_items WHERE id = ? AND basket_id = ?", itemID, basketID))
	if errors.Is(err, sql.ErrNoRows) {
		return it, ErrBasketItemNotFound
	}
	return it, err
}

func setBasketTotalTx(ctx context.Context, tx *sql.Tx, basketID uint64, total model.Money) error {
	_, err := tx.ExecContext(ctx, "UPDATE baskets SET total_cents = ? WHERE id = ?", int64(total), basketID)
	return err
}

// GetOrCreateActive returns the user's active basket with its items,
// lazily creating an empty one.
func (r *BasketRepo) GetOrCreateActive(ctx context.Context, userID uint64, ttl time.Duration) (model.Basket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Basket{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := ensureBasketTx(ctx, tx, userID, ttl)
	if err != nil {
		return b, err
	}
	if b.Items, err = basketItemsTx(ctx, tx, b.ID); err != nil {
		return b, err
	}
	if err := tx.Commit(); err != nil {
		return b, err
	}
	committed = true
	return b, nil
}

// AddItem appends it to the user's active basket (creating the basket when
// needed) and raises the total by the item price.  it.ID and it.BasketID are set.
func (r *BasketRepo) AddItem(ctx context.Context, userID uint64, it *model.BasketItem, ttl time.Duration) (model.Basket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Basket{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := ensureBasketTx(ctx, tx, userID, ttl)
	if err != nil {
		return b, err
	}
	if it.Quantity < 1 || it.ItemType == model.ItemRoom {
		it.Quantity = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO basket_items (basket_id, item_type, item_id, quantity, price_cents, start_date, end_date, guests, special_requests)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		b.ID, it.ItemType, it.ItemID, it.Quantity, int64(it.Price), nullDate(it.StartDate), nullDate(it.EndDate), it.Guests, it.SpecialRequests)
	if err != nil {
		return b, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return b, err
	}
	it.ID, it.BasketID = uint64(id), b.ID
	it.CreatedAt = time.Now().UTC()

	b.Total += it.LineTotal()
	if err := setBasketTotalTx(ctx, tx, b.ID, b.Total); err != nil {
		return b, err
	}
	if err := tx.Commit(); err != nil {
		return b, err
	}
	committed = true
	return b, nil
}

// ItemPatch lists the fields an item update may change; nil leaves a field as is.
type ItemPatch struct {
	Quantity        *int
	Guests          *int
	SpecialRequests *string
}

// UpdateItem changes one item of the user's active basket.  The unit price
// stays fixed; a new quantity moves the basket total by price times the
// quantity difference.  Room items always hold quantity 1.
func (r *BasketRepo) UpdateItem(ctx context.Context, userID, itemID uint64, p ItemPatch) (model.BasketItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.BasketItem{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := liveBasketTx(ctx, tx, userID, time.Now().UTC())
	if err != nil {
		return model.BasketItem{}, err
	}
	it, err := basketItemTx(ctx, tx, b.ID, itemID)
	if err != nil {
		return it, err
	}
	oldLine := it.LineTotal()
	if p.Quantity != nil && *p.Quantity != it.Quantity {
		if it.ItemType == model.ItemRoom {
			return it, ErrRoomQuantityFixed
		}
		it.Quantity = *p.Quantity
	}
	if p.Guests != nil {
		it.Guests = *p.Guests
	}
	if p.SpecialRequests != nil {
		it.SpecialRequests = *p.SpecialRequests
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE basket_items SET quantity = ?, guests = ?, special_requests = ? WHERE id = ?",
		it.Quantity, it.Guests, it.SpecialRequests, it.ID); err != nil {
		return it, err
	}
	if err := setBasketTotalTx(ctx, tx, b.ID, max(0, b.Total+it.LineTotal()-oldLine)); err != nil {
		return it, err
	}
	if err := tx.Commit(); err != nil {
		return it, err
	}
	committed = true
	return it, nil
}

// RemoveItem deletes one item and lowers the total by its line total, never below zero.
func (r *BasketRepo) RemoveItem(ctx context.Context, userID, itemID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := liveBasketTx(ctx, tx, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	it, err := basketItemTx(ctx, tx, b.ID, itemID)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM basket_items WHERE id = ?", it.ID); err != nil {
		return err
	}
	if err := setBasketTotalTx(ctx, tx, b.ID, max(0, b.Total-it.LineTotal())); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Clear empties the user's active basket.
func (r *BasketRepo) Clear(ctx context.Context, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := liveBasketTx(ctx, tx, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM basket_items WHERE basket_id = ?", b.ID); err != nil {
		return err
	}
	if err := setBasketTotalTx(ctx, tx, b.ID, 0); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Checkout is the outcome of ConvertToReservations.
type Checkout struct {
	Basket       model.Basket
	Reservations []model.Reservation
	Skipped      []model.BasketItem // event and service items, which produce no reservation
}

// ConvertToReservations checks the basket out.  Each room item becomes a
// confirmed reservation and occupies its room; event and service items are
// not turned into anything and are reported in Checkout.Skipped.  The items
// are removed and the basket is marked converted.  Any failure, such as a
// room taken since it was added, rolls the whole checkout back.
func (r *BasketRepo) ConvertToReservations(ctx context.Context, userID uint64) (Checkout, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Checkout{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := liveBasketTx(ctx, tx, userID, time.Now().UTC())
	if err != nil {
		return Checkout{}, err
	}
	if b.Items, err = basketItemsTx(ctx, tx, b.ID); err != nil {
		return Checkout{}, err
	}
	if len(b.Items) == 0 {
		return Checkout{}, ErrBasketEmpty
	}

	out := Checkout{Basket: b}
	for _, it := range b.Items {
		if it.ItemType != model.ItemRoom {
			// TODO: events and services need their own booking records (tickets, service orders).
			out.Skipped = append(out.Skipped, it)
			continue
		}
		if it.StartDate == nil || it.EndDate == nil {
			return Checkout{}, newError(ErrInvalidState, "room item is missing its dates")
		}
		room, err := getRoom(ctx, tx, it.ItemID, true)
		if err != nil {
			return Checkout{}, err
		}
		if room.Status != model.RoomAvailable {
			return Checkout{}, ErrRoomUnavailable
		}
		res := model.Reservation{
			RoomID:          room.ID,
			UserID:          userID,
			CheckInDate:     *it.StartDate,
			CheckOutDate:    *it.EndDate,
			NumberOfGuests:  max(1, it.Guests),
			TotalPrice:      it.LineTotal(),
			Status:          model.ReservationConfirmed,
			SpecialRequests: it.SpecialRequests,
		}
		if err := insertReservation(ctx, tx, &res); err != nil {
			return Checkout{}, err
		}
		if err := setRoomStatus(ctx, tx, room.ID, model.RoomOccupied); err != nil {
			return Checkout{}, err
		}
		out.Reservations = append(out.Reservations, res)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM basket_items WHERE basket_id = ?", b.ID); err != nil {
		return Checkout{}, err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE baskets SET status = 'converted' WHERE id = ?", b.ID); err != nil {
		return Checkout{}, err
	}
	if err := tx.Commit(); err != nil {
		return Checkout{}, err
	}
	committed = true
	out.Basket.Status = model.BasketConverted
	return out, nil
}

// ExpireStale marks active baskets whose expiry has passed as expired and
// reports how many were touched.
func (r *BasketRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE baskets SET status = 'expired' WHERE status = 'active' AND expires_at < ?", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BasketFilter narrows List.
type BasketFilter struct {
	Status string
	UserID uint64
	Page
}

// List returns baskets without items, newest first.
func (r *BasketRepo) List(ctx context.Context, f BasketFilter) ([]model.Basket, int64, error) {
	var w where
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.UserID != 0 {
		w.add("user_id = ?", f.UserID)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM baskets"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+basketColumns+" FROM baskets"+w.String()+" ORDER BY id DESC LIMIT ? OFFSET ?",
		append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []model.Basket{}
	for rows.Next() {
		b, err := scanBasket(rows)
		if err != nil {
			return nil, 0, err
		}
		b.Items = []model.BasketItem{}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// GetByID returns a basket of any status with its items.
func (r *BasketRepo) GetByID(ctx context.Context, id uint64) (model.Basket, error) {
	b, err := scanBasket(r.db.QueryRowContext(ctx, "SELECT "+basketColumns+" FROM baskets WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBasketNotFound
	}
	if err != nil {
		return b, err
	}
	b.Items, err = basketItemsTx(ctx, r.db, b.ID)
	return b, err
}
