package queue

import (
    "encoding/json"
    "io"
    "log/slog"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-booking/internal/model"
)

func testReservation() model.Reservation {
    in, _ := model.ParseDate("2025-01-01")
    out, _ := model.ParseDate("2025-01-04")
    return model.Reservation{
        ID: 7, UserID: 3, RoomID: 1,
        CheckInDate: in, CheckOutDate: out,
        NumberOfGuests: 2, TotalPrice: 59700,
        Status: model.ReservationConfirmed,
    }
}

func TestNewReservationEvent(t *testing.T) {
    at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
    ev := NewReservationEvent(testReservation(), at)

    assert.Equal(t, uint64(7), ev.ReservationID)
    assert.Equal(t, "2025-01-01", ev.CheckInDate)
    assert.Equal(t, "2025-01-04", ev.CheckOutDate)
    assert.Equal(t, int64(59700), ev.TotalPriceCents)
    assert.Equal(t, "2025-01-01T12:00:00Z", ev.OccurredAt)
}

func TestHandleMessageAppendsLines(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "logs")
    c := NewConsumer("", dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

    ev := NewReservationEvent(testReservation(), time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
    body, err := json.Marshal(ev)
    require.NoError(t, err)

    require.NoError(t, c.handleMessage(ReservationConfirmedQueue, body))
    ev.Status = model.ReservationCancelled
    body, _ = json.Marshal(ev)
    require.NoError(t, c.handleMessage(ReservationCancelledQueue, body))

    data, err := os.ReadFile(filepath.Join(dir, logFileName))
    require.NoError(t, err)
    assert.Equal(t,
        "[2025-01-01T12:00:00Z] Reservation confirmed | reservation_id=7 | user_id=3 | room_id=1 | stay=2025-01-01..2025-01-04 | guests=2 | total=59700 cents\n"+
            "[2025-01-01T12:00:00Z] Reservation cancelled | reservation_id=7 | user_id=3 | room_id=1 | stay=2025-01-01..2025-01-04 | guests=2 | total=59700 cents\n",
        string(data))
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
    c := NewConsumer("", t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
    assert.Error(t, c.handleMessage(ReservationConfirmedQueue, []byte("{not json")))
}
