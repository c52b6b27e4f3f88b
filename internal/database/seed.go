package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/hotel-booking/internal/utils"
)

type seedUser struct {
	first, last, email, password, phone, address, role string
}

type seedRoom struct {
	name, description, kind string
	priceCents              int64
	capacity                int
	featured                bool
}

type seedEvent struct {
	title, description, date, time, location string
	capacity                                 int
	priceCents                               int64
	featured                                 bool
}

const placeholderImage = "/placeholder.svg?height=400&width=600"

var demoUsers = []seedUser{
	{"Admin", "User", "admin@example.com", "admin123", "", "", "admin"},
	{"John", "Doe", "john.doe@example.com", "password123", "+1 (555) 123-4567", "123 Main St, Anytown, USA", "guest"},
}

var demoRooms = []seedRoom{
	{"Deluxe King Room", "Spacious room with king-sized bed, work desk, and city views.", "Deluxe", 19900, 2, true},
	{"Executive Suite", "Luxurious suite with separate living area and premium amenities.", "Suite", 34900, 2, true},
	{"Family Room", "Comfortable room for families with two queen beds and extra space.", "Standard", 27900, 4, true},
	{"Presidential Suite", "Our most luxurious accommodation with panoramic views and butler service.", "Suite", 59900, 2, false},
	{"Twin Room", "Cozy room with two single beds, perfect for friends traveling together.", "Standard", 17900, 2, false},
}

var demoEvents = []seedEvent{
	{"Summer Gala Dinner", "Join us for an elegant evening of fine dining and entertainment.", "2023-07-15", "19:00", "Grand Ballroom", 200, 15000, true},
	{"Wine Tasting Experience", "Sample premium wines from around the world with our sommelier.", "2023-07-22", "18:00", "Wine Cellar", 30, 8500, true},
	{"Wedding Showcase", "Explore our wedding venues and meet with our event planners.", "2023-08-05", "11:00", "Garden Terrace", 100, 0, true},
}

// Seed inserts the demo accounts, rooms and events.  Users are skipped when
// their email exists; rooms and events only when their table is empty.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	for _, u := range demoUsers {
		hash, err := utils.HashPassword(u.password, bcryptCost)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT IGNORE INTO users (first_name, last_name, email, password_hash, phone, address, role)
			 VALUES (?,?,?,?,?,?,?)`,
			u.first, u.last, u.email, hash, u.phone, u.address, u.role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	if empty, err := tableEmpty(ctx, db, "rooms"); err != nil {
		return err
	} else if empty {
		for _, r := range demoRooms {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO rooms (name, description, type, price_cents, capacity, image, status, featured)
				 VALUES (?,?,?,?,?,?,'available',?)`,
				r.name, r.description, r.kind, r.priceCents, r.capacity, placeholderImage, r.featured); err != nil {
				return fmt.Errorf("seed room %s: %w", r.name, err)
			}
		}
	}

	if empty, err := tableEmpty(ctx, db, "events"); err != nil {
		return err
	} else if empty {
		for _, e := range demoEvents {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO events (title, description, event_date, event_time, location, capacity, price_cents, image, featured)
				 VALUES (?,?,?,?,?,?,?,?,?)`,
				e.title, e.description, e.date, e.time, e.location, e.capacity, e.priceCents, placeholderImage, e.featured); err != nil {
				return fmt.Errorf("seed event %s: %w", e.title, err)
			}
		}
	}
	return nil
}

// tableEmpty is only called with the fixed table names above.
func tableEmpty(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
