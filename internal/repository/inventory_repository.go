package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// InventoryRepo manages stocked consumables.
type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

const inventoryColumns = "id, name, category, quantity, unit, min_quantity, price_cents, supplier, created_at, updated_at"

// Quantity operations accepted by AdjustQuantity.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
)

func scanInventoryItem(s scanner) (model.InventoryItem, error) {
	var i model.InventoryItem
	err := s.Scan(&i.ID, &i.Name, &i.Category, &i.Quantity, &i.Unit, &i.MinQuantity,
		&i.Price, &i.Supplier, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

// InventoryFilter narrows List.  LowStock keeps items at or below their minimum.
type InventoryFilter struct {
	Category string
	LowStock bool
	Page
}

func (r *InventoryRepo) List(ctx context.Context, f InventoryFilter) ([]model.InventoryItem, int64, error) {
	var w where
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.LowStock {
		w.add("quantity <= min_quantity")
	}
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory_items"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset := f.limitOffset()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory_items"+w.String()+" ORDER BY category, name, id LIMIT ? OFFSET ?",
		append(w.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := []model.InventoryItem{}
	for rows.Next() {
		i, err := scanInventoryItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, i)
	}
	return out, total, rows.Err()
}

func (r *InventoryRepo) GetByID(ctx context.Context, id uint64) (model.InventoryItem, error) {
	return getInventoryItem(ctx, r.db, id, false)
}

func getInventoryItem(ctx context.Context, q dbtx, id uint64, forUpdate bool) (model.InventoryItem, error) {
	query := "SELECT " + inventoryColumns + " FROM inventory_items WHERE id = ?"
	if forUpdate {
		query += " FOR UPDATE"
	}
	i, err := scanInventoryItem(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return i, ErrInventoryItemNotFound
	}
	return i, err
}

func (r *InventoryRepo) Create(ctx context.Context, i *model.InventoryItem) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO inventory_items (name, category, quantity, unit, min_quantity, price_cents, supplier) VALUES (?,?,?,?,?,?,?)",
		i.Name, i.Category, i.Quantity, i.Unit, i.MinQuantity, int64(i.Price), i.Supplier)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	i.ID = uint64(id)
	return nil
}

func (r *InventoryRepo) Update(ctx context.Context, i *model.InventoryItem) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE inventory_items SET name = ?, category = ?, quantity = ?, unit = ?, min_quantity = ?, price_cents = ?, supplier = ? WHERE id = ?",
		i.Name, i.Category, i.Quantity, i.Unit, i.MinQuantity, int64(i.Price), i.Supplier, i.ID)
	if err != nil {
		return err
	}
	return affected(res, ErrInventoryItemNotFound)
}

func (r *InventoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM inventory_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, ErrInventoryItemNotFound)
}

// AdjustQuantity adds or subtracts amount under a row lock so concurrent
// stock movements cannot overwrite each other.  A result below zero is
// rejected with ErrInsufficientQuantity and nothing is written.
func (r *InventoryRepo) AdjustQuantity(ctx context.Context, id uint64, amount int, op string) (model.InventoryItem, error) {
	if op != OpAdd && op != OpSubtract {
		return model.InventoryItem{}, ErrInvalidOperation
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.InventoryItem{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	item, err := getInventoryItem(ctx, tx, id, true)
	if err != nil {
		return item, err
	}
	next := item.Quantity + amount
	if op == OpSubtract {
		next = item.Quantity - amount
	}
	if next < 0 {
		return item, ErrInsufficientQuantity
	}
	if _, err := tx.ExecContext(ctx, "UPDATE inventory_items SET quantity = ? WHERE id = ?", next, id); err != nil {
		return item, err
	}
	if err := tx.Commit(); err != nil {
		return item, err
	}
	committed = true
	item.Quantity = next
	return item, nil
}
