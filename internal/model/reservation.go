package model

import "time"

// Reservation statuses.
const (
    ReservationPending   = "pending"
    ReservationConfirmed = "confirmed"
    ReservationCancelled = "cancelled"
    ReservationCompleted = "completed"
)

// Reservation records a user's booking of a room for a date range.
// TotalPrice is the room price multiplied by the number of nights at
// booking time.
type Reservation struct {
    ID              uint64    `json:"id"`               // reservations.id
    RoomID          uint64    `json:"room_id"`          // reservations.room_id
    UserID          uint64    `json:"user_id"`          // reservations.user_id
    CheckInDate     Date      `json:"check_in_date"`    // reservations.check_in_date
    CheckOutDate    Date      `json:"check_out_date"`   // reservations.check_out_date
    NumberOfGuests  int       `json:"number_of_guests"` // reservations.number_of_guests
    TotalPrice      Money     `json:"total_price"`      // reservations.total_price_cents
    Status          string    `json:"status"`           // reservations.status
    SpecialRequests string    `json:"special_requests"` // reservations.special_requests
    CreatedAt       time.Time `json:"created_at"`
    UpdatedAt       time.Time `json:"updated_at"`
}

// ValidReservationStatus reports whether s is a known reservation status.
func ValidReservationStatus(s string) bool {
    switch s {
    case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
        return true
    }
    return false
}
