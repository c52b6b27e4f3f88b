package model

import "time"

// Event is a hotel-hosted happening (dinner, tasting, showcase) sold per ticket.
type Event struct {
    ID          uint64    `json:"id"`
    Title       string    `json:"title"`
    Description string    `json:"description"`
    Date        Date      `json:"date"`
    Time        string    `json:"time"` // HH:MM, local to the venue
    Location    string    `json:"location"`
    Capacity    int       `json:"capacity"`
    Price       Money     `json:"price"`
    Image       string    `json:"image"`
    Featured    bool      `json:"featured"`
    CreatedAt   time.Time `json:"created_at"`
    UpdatedAt   time.Time `json:"updated_at"`
}
