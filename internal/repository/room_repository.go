package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RoomRepo encapsulates all queries on the rooms table.
type RoomRepo struct {
	db *sql.DB
}

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = "id, name, description, type, price_cents, capacity, image, status, featured, created_at, updated_at"

func scanRoom(s scanner) (model.Room, error) {
	var m model.Room
	err := s.Scan(&m.ID, &m.Name, &m.Description, &m.Type, &m.Price, &m.Capacity,
		&m.Image, &m.Status, &m.Featured, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func scanRooms(rows *sql.Rows) ([]model.Room, error) {
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		m, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RoomFilter narrows List.  Zero values disable a filter.
type RoomFilter struct {
	Featured *bool
	Status   string
	Type     string
	Page
}

// List returns rooms matching f, ordered by id, plus the unpaged total.
func (r *RoomRepo) List(ctx context.Context, f RoomFilter) ([]model.Room, int64, error) {
	var w where
	if f.Featured != nil {
		w.add("featured = ?", *f.Featured)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+roomColumns+" FROM rooms"+w.String()+" ORDER BY id LIMIT ? OFFSET ?",
		append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	out, err := scanRooms(rows)
	return out, total, err
}

// GetByID returns ErrRoomNotFound when no row matches.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return getRoom(ctx, r.db, id, false)
}

func getRoom(ctx context.Context, q dbtx, id uint64, forUpdate bool) (model.Room, error) {
	query := "SELECT " + roomColumns + " FROM rooms WHERE id = ?"
	if forUpdate {
		query += " FOR UPDATE"
	}
	m, err := scanRoom(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrRoomNotFound
	}
	return m, err
}

func setRoomStatus(ctx context.Context, q dbtx, id uint64, status string) error {
	_, err := q.ExecContext(ctx, "UPDATE rooms SET status = ? WHERE id = ?", status, id)
	return err
}

// Create inserts m and sets its ID.  Status defaults to available.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	if m.Status == "" {
		m.Status = model.RoomAvailable
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO rooms (name, description, type, price_cents, capacity, image, status, featured) VALUES (?,?,?,?,?,?,?,?)",
		m.Name, m.Description, m.Type, int64(m.Price), m.Capacity, m.Image, m.Status, m.Featured)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update overwrites every editable column of m.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE rooms SET name = ?, description = ?, type = ?, price_cents = ?, capacity = ?, image = ?, status = ?, featured = ? WHERE id = ?",
		m.Name, m.Description, m.Type, int64(m.Price), m.Capacity, m.Image, m.Status, m.Featured, m.ID)
	if err != nil {
		return err
	}
	return affected(res, ErrRoomNotFound)
}

// Delete removes a room.  Rooms referenced by reservations are kept and
// ErrRoomHasReservations is returned.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		if IsReferenced(err) {
			return ErrRoomHasReservations
		}
		return err
	}
	return affected(res, ErrRoomNotFound)
}

// Available lists rooms in service with enough capacity and no confirmed
// reservation overlapping [in, out).
func (r *RoomRepo) Available(ctx context.Context, in, out model.Date, people int) ([]model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms rm
		WHERE rm.status = 'available' AND rm.capacity >= ?
		AND NOT EXISTS (
			SELECT 1 FROM reservations rs
			WHERE rs.room_id = rm.id AND rs.status = 'confirmed'
			AND rs.check_in_date < ? AND rs.check_out_date > ?
		)
		ORDER BY rm.price_cents, rm.id`
	rows, err := r.db.QueryContext(ctx, q, people, out, in)
	if err != nil {
		return nil, err
	}
	return scanRooms(rows)
}
