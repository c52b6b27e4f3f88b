package model

import "time"

// Room statuses.  A room is occupied while a confirmed reservation holds it.
const (
    RoomAvailable   = "available"
    RoomOccupied    = "occupied"
    RoomMaintenance = "maintenance"
)

// Room is a bookable unit.  Price is per night.
type Room struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Description string    `json:"description"`
    Type        string    `json:"type"`
    Price       Money     `json:"price"`
    Capacity    int       `json:"capacity"`
    Image       string    `json:"image"`
    Status      string    `json:"status"`
    Featured    bool      `json:"featured"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}

// ValidRoomStatus reports whether s is a known room status.
func ValidRoomStatus(s string) bool {
    return s == RoomAvailable || s == RoomOccupied || s == RoomMaintenance
}
