package model

import "time"

// Basket statuses.  A user has at most one active basket.
const (
    BasketActive    = "active"
    BasketConverted = "converted"
    BasketExpired   = "expired"
)

// Basket item kinds.  Only room items turn into reservations on checkout.
const (
    ItemRoom    = "room"
    ItemEvent   = "event"
    ItemService = "service"
)

// Basket is a per-user staging area of prospective bookings.  Total is
// kept equal to the sum of price times quantity over its items.
type Basket struct {
    ID        uint64       `json:"id"`
    UserID    uint64       `json:"user_id"`
    Status    string       `json:"status"`
    Total     Money        `json:"total_amount"`
    ExpiresAt time.Time    `json:"expires_at"`
    Items     []BasketItem `json:"items"`
    CreatedAt time.Time    `json:"created_at"`
    UpdatedAt time.Time    `json:"updated_at"`
}

// BasketItem is one line of a basket.  Price is the unit price: a ticket
// for events, the whole stay (nightly rate times nights) for rooms, whose
// quantity is always 1.
type BasketItem struct {
    ID              uint64    `json:"id"`
    BasketID        uint64    `json:"basket_id"`
    ItemType        string    `json:"item_type"`
    ItemID          uint64    `json:"item_id"`
    Quantity        int       `json:"quantity"`
    Price           Money     `json:"price"`
    StartDate       *Date     `json:"start_date,omitempty"`
    EndDate         *Date     `json:"end_date,omitempty"`
    Guests          int       `json:"guests"`
    SpecialRequests string    `json:"special_requests"`
    Details         any       `json:"details,omitempty"` // the referenced room or event, when loaded
    CreatedAt       time.Time `json:"created_at"`
}

// LineTotal is what the item adds to the basket total.
func (i BasketItem) LineTotal() Money { return i.Price.Mul(i.Quantity) }
