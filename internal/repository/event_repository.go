package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// EventRepo provides CRUD access to the events table.
type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

const eventColumns = "id, title, description, event_date, event_time, location, capacity, price_cents, image, featured, created_at, updated_at"

func scanEvent(s scanner) (model.Event, error) {
	var e model.Event
	err := s.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location,
		&e.Capacity, &e.Price, &e.Image, &e.Featured, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// EventFilter narrows List.  Date matches a single calendar day.
type EventFilter struct {
	Featured *bool
	Date     *model.Date
	Page
}

// List returns events ordered by date and time.
func (r *EventRepo) List(ctx context.Context, f EventFilter) ([]model.Event, int64, error) {
	var w where
	if f.Featured != nil {
		w.add("featured = ?", *f.Featured)
	}
	if f.Date != nil {
		w.add("event_date = ?", *f.Date)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events"+w.String()+" ORDER BY event_date, event_time, id LIMIT ? OFFSET ?",
		append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

// GetByID returns ErrEventNotFound when no row matches.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrEventNotFound
	}
	return e, err
}

// Create inserts e and sets its ID.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO events (title, description, event_date, event_time, location, capacity, price_cents, image, featured) VALUES (?,?,?,?,?,?,?,?,?)",
		e.Title, e.Description, e.Date, e.Time, e.Location, e.Capacity, int64(e.Price), e.Image, e.Featured)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// Update overwrites every editable column of e.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE events SET title = ?, description = ?, event_date = ?, event_time = ?, location = ?, capacity = ?, price_cents = ?, image = ?, featured = ? WHERE id = ?",
		e.Title, e.Description, e.Date, e.Time, e.Location, e.Capacity, int64(e.Price), e.Image, e.Featured, e.ID)
	if err != nil {
		return err
	}
	return affected(res, ErrEventNotFound)
}

// Delete removes an event.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, ErrEventNotFound)
}
