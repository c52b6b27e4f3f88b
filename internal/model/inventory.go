package model

import "time"

// InventoryItem is a stocked consumable (linen, minibar, toiletries).
type InventoryItem struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Category    string    `json:"category"`
    Quantity    int       `json:"quantity"`
    Unit        string    `json:"unit"`
    MinQuantity int       `json:"min_quantity"`
    Price       Money     `json:"price"`
    Supplier    string    `json:"supplier"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

// LowStock reports whether the item is at or below its configured minimum.
func (i InventoryItem) LowStock() bool { return i.Quantity <= i.MinQuantity }
