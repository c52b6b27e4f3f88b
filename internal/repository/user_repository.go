package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, first_name, last_name, email, password_hash, phone, address, role, is_active, created_at, updated_at"

func scanUser(s scanner) (model.User, error) {
	var u model.User
	err := s.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Address, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// NormalizeEmail lower-cases and trims an address before storage or lookup.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Create hashes password, inserts u and sets u.ID.  A taken email yields
// ErrEmailExists and no row.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = model.RoleGuest
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password_hash, phone, address, role) VALUES (?,?,?,?,?,?,?)",
		u.FirstName, u.LastName, u.Email, hash, u.Phone, u.Address, u.Role)
	if err != nil {
		if IsDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	u.PasswordHash = hash
	u.IsActive = true
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", NormalizeEmail(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrUserNotFound
	}
	return u, err
}

// List returns users ordered by id, optionally filtered by role.
func (r *UserRepo) List(ctx context.Context, role string, p Page) ([]model.User, int64, error) {
	var w where
	if role != "" {
		w.add("role = ?", role)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset := p.limitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users"+w.String()+" ORDER BY id LIMIT ? OFFSET ?",
		append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

// Update writes the editable columns of u (everything but email and password).
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET first_name = ?, last_name = ?, phone = ?, address = ?, role = ?, is_active = ? WHERE id = ?",
		u.FirstName, u.LastName, u.Phone, u.Address, u.Role, u.IsActive, u.ID)
	if err != nil {
		return err
	}
	return affected(res, ErrUserNotFound)
}

// UpdateEmail changes the login address; a taken address yields ErrEmailExists.
func (r *UserRepo) UpdateEmail(ctx context.Context, id uint64, email string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET email = ? WHERE id = ?", NormalizeEmail(email), id)
	if err != nil {
		if IsDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	return affected(res, ErrUserNotFound)
}

// UpdatePassword re-hashes and stores a new password.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash = ? WHERE id = ?", hash, id)
	if err != nil {
		return err
	}
	return affected(res, ErrUserNotFound)
}

// Delete removes a user.  Users with reservations cannot be deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		if IsReferenced(err) {
			return newError(ErrConflict, "user has reservations")
		}
		return err
	}
	return affected(res, ErrUserNotFound)
}
