package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

var roomCols = []string{"id", "name", "description", "type", "price_cents", "capacity", "image", "status", "featured", "created_at", "updated_at"}

func roomRow(id int64, priceCents int64, capacity int, status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(roomCols).AddRow(id, "Deluxe", "", "double", priceCents, capacity, "", status, false, now, now)
}

func TestCreateForRoomPricesStayAndOccupiesRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM rooms WHERE id = \? FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(roomRow(1, 19900, 2, model.RoomAvailable))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(int64(1), int64(7), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(2), int64(59700), model.ReservationConfirmed, "late arrival").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(`UPDATE rooms SET status = \? WHERE id = \?`).
		WithArgs(model.RoomOccupied, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.CreateForRoom(context.Background(), NewReservation{
		RoomID: 1, UserID: 7,
		CheckIn: date(t, "2025-01-01"), CheckOut: date(t, "2025-01-04"),
		Guests: 2, SpecialRequests: "late arrival",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), res.ID)
	assert.Equal(t, model.Money(59700), res.TotalPrice)
	assert.Equal(t, model.ReservationConfirmed, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForRoomRejectsOccupiedRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WillReturnRows(roomRow(1, 19900, 2, model.RoomOccupied))
	mock.ExpectRollback()

	_, err := repo.CreateForRoom(context.Background(), NewReservation{
		RoomID: 1, UserID: 7, CheckIn: date(t, "2025-01-01"), CheckOut: date(t, "2025-01-02"),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForRoomRejectsTooManyGuests(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WillReturnRows(roomRow(1, 19900, 2, model.RoomAvailable))
	mock.ExpectRollback()

	_, err := repo.CreateForRoom(context.Background(), NewReservation{
		RoomID: 1, UserID: 7, CheckIn: date(t, "2025-01-01"), CheckOut: date(t, "2025-01-02"), Guests: 3,
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForRoomRejectsInvertedDatesBeforeTouchingDB(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	_, err := repo.CreateForRoom(context.Background(), NewReservation{
		RoomID: 1, UserID: 7, CheckIn: date(t, "2025-01-04"), CheckOut: date(t, "2025-01-04"),
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var reservationCols = []string{"id", "room_id", "user_id", "check_in_date", "check_out_date", "number_of_guests", "total_price_cents", "status", "special_requests", "created_at", "updated_at"}

func reservationRow(status string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(reservationCols).
		AddRow(11, 1, 7, now, now.Add(72*time.Hour), 2, 59700, status, "", now, now)
}

func TestCancelReleasesRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \? FOR UPDATE`).WillReturnRows(reservationRow(model.ReservationConfirmed))
	mock.ExpectExec(`UPDATE reservations SET status = \?`).
		WithArgs(model.ReservationCancelled, sqlmock.AnyArg(), sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE rooms SET status = \?`).
		WithArgs(model.RoomAvailable, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.Cancel(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReopenAsPendingOccupiesRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \? FOR UPDATE`).WillReturnRows(reservationRow(model.ReservationCancelled))
	mock.ExpectExec(`UPDATE reservations SET status = \?`).
		WithArgs(model.ReservationPending, sqlmock.AnyArg(), sqlmock.AnyArg(), int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WillReturnRows(roomRow(1, 19900, 2, model.RoomAvailable))
	mock.ExpectExec(`UPDATE rooms SET status = \?`).
		WithArgs(model.RoomOccupied, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := model.ReservationPending
	res, err := repo.Update(context.Background(), 11, ReservationPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.ReservationPending, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReopenAsPendingRejectsOccupiedRoom(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \? FOR UPDATE`).WillReturnRows(reservationRow(model.ReservationCancelled))
	mock.ExpectExec(`UPDATE reservations SET status = \?`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WillReturnRows(roomRow(1, 19900, 2, model.RoomOccupied))
	mock.ExpectRollback()

	status := model.ReservationPending
	_, err := repo.Update(context.Background(), 11, ReservationPatch{Status: &status})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelTwiceConflicts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations WHERE id = \? FOR UPDATE`).WillReturnRows(reservationRow(model.ReservationCancelled))
	mock.ExpectRollback()

	_, err := repo.Cancel(context.Background(), 11)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomTransition(t *testing.T) {
	s, ok := roomTransition(model.ReservationConfirmed, model.ReservationCompleted)
	assert.True(t, ok)
	assert.Equal(t, model.RoomAvailable, s)

	s, ok = roomTransition(model.ReservationCancelled, model.ReservationConfirmed)
	assert.True(t, ok)
	assert.Equal(t, model.RoomOccupied, s)

	_, ok = roomTransition(model.ReservationPending, model.ReservationConfirmed)
	assert.False(t, ok)

	s, ok = roomTransition(model.ReservationCancelled, model.ReservationPending)
	assert.True(t, ok, "reopening as pending takes the room again")
	assert.Equal(t, model.RoomOccupied, s)

	s, ok = roomTransition(model.ReservationPending, model.ReservationCancelled)
	assert.True(t, ok)
	assert.Equal(t, model.RoomAvailable, s)

	_, ok = roomTransition(model.ReservationCompleted, model.ReservationCancelled)
	assert.False(t, ok)
}

var (
	basketCols = []string{"id", "user_id", "status", "total_cents", "expires_at", "created_at", "updated_at"}
	itemCols   = []string{"id", "basket_id", "item_type", "item_id", "quantity", "price_cents", "start_date", "end_date", "guests", "special_requests", "created_at"}
)

func basketRow(id, total int64, expires time.Time) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(basketCols).AddRow(id, 7, model.BasketActive, total, expires, now, now)
}

func TestAddItemRaisesTotal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \? AND status = 'active'`).
		WithArgs(int64(7)).
		WillReturnRows(basketRow(3, 1000, time.Now().Add(time.Hour)))
	mock.ExpectExec("INSERT INTO basket_items").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`UPDATE baskets SET total_cents = \? WHERE id = \?`).
		WithArgs(int64(60700), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	in, out := date(t, "2025-01-01"), date(t, "2025-01-04")
	item := &model.BasketItem{ItemType: model.ItemRoom, ItemID: 1, Price: 59700, StartDate: &in, EndDate: &out, Guests: 2}
	b, err := repo.AddItem(context.Background(), 7, item, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, model.Money(60700), b.Total)
	assert.Equal(t, uint64(5), item.ID)
	assert.Equal(t, uint64(3), item.BasketID)
	assert.Equal(t, 1, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddItemReplacesLapsedBasket(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 1000, time.Now().Add(-time.Minute)))
	mock.ExpectExec(`UPDATE baskets SET status = 'expired' WHERE id = \?`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO baskets").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectExec("INSERT INTO basket_items").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec(`UPDATE baskets SET total_cents = \?`).WithArgs(int64(2500), int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b, err := repo.AddItem(context.Background(), 7, &model.BasketItem{ItemType: model.ItemEvent, ItemID: 2, Quantity: 1, Price: 2500}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), b.ID)
	assert.Equal(t, model.Money(2500), b.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateItemKeepsUnitPrice(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 5000, now.Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE id = \? AND basket_id = \?`).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(9, 3, model.ItemEvent, 2, 2, 2500, nil, nil, 0, "", now))
	mock.ExpectExec(`UPDATE basket_items SET quantity = \?`).
		WithArgs(int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE baskets SET total_cents = \?`).WithArgs(int64(7500), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	qty := 3
	it, err := repo.UpdateItem(context.Background(), 7, 9, ItemPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, model.Money(2500), it.Price)
	assert.Equal(t, 3, it.Quantity)
	assert.Equal(t, model.Money(7500), it.LineTotal())
	assert.Nil(t, it.StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateItemRejectsRoomQuantity(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)
	now := time.Now()
	in, out := date(t, "2025-01-01"), date(t, "2025-01-04")

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 59700, now.Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE id = \? AND basket_id = \?`).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(8, 3, model.ItemRoom, 1, 1, 59700, in.Time, out.Time, 2, "", now))
	mock.ExpectRollback()

	qty := 2
	_, err := repo.UpdateItem(context.Background(), 7, 8, ItemPatch{Quantity: &qty})
	assert.ErrorIs(t, err, ErrRoomQuantityFixed)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemNeverGoesNegative(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 100, now.Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(9, 3, model.ItemEvent, 2, 1, 2500, nil, nil, 0, "", now))
	mock.ExpectExec(`DELETE FROM basket_items WHERE id = \?`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE baskets SET total_cents = \?`).WithArgs(int64(0), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RemoveItem(context.Background(), 7, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemSubtractsLineTotal(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 10000, now.Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(9, 3, model.ItemEvent, 2, 3, 2500, nil, nil, 0, "", now))
	mock.ExpectExec(`DELETE FROM basket_items WHERE id = \?`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE baskets SET total_cents = \?`).WithArgs(int64(2500), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RemoveItem(context.Background(), 7, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveItemWithoutBasket(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(sqlmock.NewRows(basketCols))
	mock.ExpectRollback()

	err := repo.RemoveItem(context.Background(), 7, 9)
	assert.ErrorIs(t, err, ErrBasketNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertBooksRoomItemsAndSkipsEvents(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)
	now := time.Now()
	in, out := date(t, "2025-01-01"), date(t, "2025-01-04")

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 62200, now.Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE basket_id = \?`).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(8, 3, model.ItemRoom, 1, 1, 59700, in.Time, out.Time, 2, "", now).
			AddRow(9, 3, model.ItemEvent, 2, 1, 2500, nil, nil, 0, "", now))
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WithArgs(int64(1)).WillReturnRows(roomRow(1, 19900, 2, model.RoomAvailable))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(int64(1), int64(7), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(2), int64(59700), model.ReservationConfirmed, "").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec(`UPDATE rooms SET status = \?`).WithArgs(model.RoomOccupied, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM basket_items WHERE basket_id = \?`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE baskets SET status = 'converted'`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	co, err := repo.ConvertToReservations(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, co.Reservations, 1)
	assert.Equal(t, uint64(21), co.Reservations[0].ID)
	assert.Equal(t, "2025-01-01", co.Reservations[0].CheckInDate.String())
	require.Len(t, co.Skipped, 1)
	assert.Equal(t, model.ItemEvent, co.Skipped[0].ItemType)
	assert.Equal(t, model.BasketConverted, co.Basket.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertEmptyBasket(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 0, time.Now().Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE basket_id = \?`).WillReturnRows(sqlmock.NewRows(itemCols))
	mock.ExpectRollback()

	_, err := repo.ConvertToReservations(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBasketEmpty)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertRollsBackWhenRoomTaken(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM baskets WHERE user_id = \?`).WillReturnRows(basketRow(3, 59700, now.Add(time.Hour)))
	mock.ExpectQuery(`FROM basket_items WHERE basket_id = \?`).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(8, 3, model.ItemRoom, 1, 1, 59700, now, now.Add(72*time.Hour), 2, "", now))
	mock.ExpectQuery(`FROM rooms WHERE id = \? FOR UPDATE`).WillReturnRows(roomRow(1, 19900, 2, model.RoomOccupied))
	mock.ExpectRollback()

	_, err := repo.ConvertToReservations(context.Background(), 7)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpireStale(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBasketRepo(db)

	mock.ExpectExec(`UPDATE baskets SET status = 'expired' WHERE status = 'active' AND expires_at < \?`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.ExpireStale(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Ada", "Lovelace", "ada@example.com", sqlmock.AnyArg(), "", "", model.RoleGuest).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	u := &model.User{FirstName: "Ada", LastName: "Lovelace", Email: "  ADA@example.com "}
	err := repo.Create(context.Background(), u, "password1", 4)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Zero(t, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var inventoryCols = []string{"id", "name", "category", "quantity", "unit", "min_quantity", "price_cents", "supplier", "created_at", "updated_at"}

func inventoryRow(qty int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(inventoryCols).AddRow(4, "Towels", "linen", qty, "pcs", 10, 500, "", now, now)
}

func TestAdjustQuantity(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInventoryRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM inventory_items WHERE id = \? FOR UPDATE`).WillReturnRows(inventoryRow(5))
	mock.ExpectExec(`UPDATE inventory_items SET quantity = \?`).WithArgs(int64(12), int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	item, err := repo.AdjustQuantity(context.Background(), 4, 7, OpAdd)
	require.NoError(t, err)
	assert.Equal(t, 12, item.Quantity)
	assert.False(t, item.LowStock())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustQuantityBelowZero(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInventoryRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM inventory_items WHERE id = \? FOR UPDATE`).WillReturnRows(inventoryRow(5))
	mock.ExpectRollback()

	_, err := repo.AdjustQuantity(context.Background(), 4, 6, OpSubtract)
	assert.ErrorIs(t, err, ErrInsufficientQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = repo.AdjustQuantity(context.Background(), 4, 1, "multiply")
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestRoomListPaginates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRoomRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rooms WHERE status = \?`).
		WithArgs(model.RoomAvailable).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(25))
	mock.ExpectQuery(`FROM rooms WHERE status = \? ORDER BY id LIMIT \? OFFSET \?`).
		WithArgs(model.RoomAvailable, int64(10), int64(10)).
		WillReturnRows(roomRow(11, 10000, 2, model.RoomAvailable))

	rooms, total, err := repo.List(context.Background(), RoomFilter{Status: model.RoomAvailable, Page: NewPage(2, 10)})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, rooms, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPageClamps(t *testing.T) {
	assert.Equal(t, Page{Page: 1, PageSize: 20}, NewPage(0, 0))
	assert.Equal(t, Page{Page: 3, PageSize: 100}, NewPage(3, 500))
}

func TestDeleteRoomReferenced(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRoomRepo(db)

	mock.ExpectExec(`DELETE FROM rooms WHERE id = \?`).WillReturnError(&mysql.MySQLError{Number: 1451})
	err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRoomHasReservations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
