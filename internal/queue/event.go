// Package queue defines the reservation events exchanged over RabbitMQ and
// the background consumer that records them.
package queue

import (
    "time"

    "github.com/iliyamo/hotel-booking/internal/model"
)

// Queue names.  Both queues are durable and use the default exchange, so
// the routing key equals the queue name.
const (
    ReservationConfirmedQueue = "reservation.confirmed"
    ReservationCancelledQueue = "reservation.cancelled"
)

// Queues lists every queue the consumer listens to.
var Queues = []string{ReservationConfirmedQueue, ReservationCancelledQueue}

// ReservationEvent is published after a reservation is confirmed or
// cancelled.  It carries enough to log or notify without querying the
// primary database.
type ReservationEvent struct {
    ReservationID   uint64 `json:"reservation_id"`
    UserID          uint64 `json:"user_id"`
    RoomID          uint64 `json:"room_id"`
    CheckInDate     string `json:"check_in_date"`
    CheckOutDate    string `json:"check_out_date"`
    NumberOfGuests  int    `json:"number_of_guests"`
    TotalPriceCents int64  `json:"total_price_cents"`
    Status          string `json:"status"`
    OccurredAt      string `json:"occurred_at"`
}

// NewReservationEvent snapshots r at time at.
func NewReservationEvent(r model.Reservation, at time.Time) ReservationEvent {
    return ReservationEvent{
        ReservationID:   r.ID,
        UserID:          r.UserID,
        RoomID:          r.RoomID,
        CheckInDate:     r.CheckInDate.String(),
        CheckOutDate:    r.CheckOutDate.String(),
        NumberOfGuests:  r.NumberOfGuests,
        TotalPriceCents: int64(r.TotalPrice),
        Status:          r.Status,
        OccurredAt:      at.UTC().Format(time.RFC3339),
    }
}
