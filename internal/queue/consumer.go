package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const logFileName = "reservations.log"

// Consumer listens to the reservation queues and appends one line per
// event to Dir/reservations.log.
type Consumer struct {
    URL string
    Dir string
    Log *slog.Logger
}

// NewConsumer returns a consumer writing into dir ("logs" when empty).
func NewConsumer(url, dir string, log *slog.Logger) *Consumer {
    if dir == "" {
        dir = "logs"
    }
    if log == nil {
        log = slog.Default()
    }
    return &Consumer{URL: url, Dir: dir, Log: log.With("component", "reservation-consumer")}
}

// Run dials the broker and consumes until ctx is cancelled.  Lost
// connections are retried with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Log.Warn("dial broker failed", "error", err, "retry_in", backoff.String())
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.Log.Warn("consume loop ended, reconnecting", "error", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

type delivery struct {
    queue string
    amqp.Delivery
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.Log.Warn("set QoS failed", "error", err)
    }

    merged := make(chan delivery)
    for _, name := range Queues {
        if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
            return fmt.Errorf("queue declare %s: %w", name, err)
        }
        msgs, err := ch.Consume(name, "", false, false, false, false, nil)
        if err != nil {
            return fmt.Errorf("queue consume %s: %w", name, err)
        }
        go func(name string, msgs <-chan amqp.Delivery) {
            for d := range msgs {
                select {
                case merged <- delivery{queue: name, Delivery: d}:
                case <-ctx.Done():
                    return
                }
            }
        }(name, msgs)
    }

    closed := conn.NotifyClose(make(chan *amqp.Error, 1))
    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case amqpErr := <-closed:
            if amqpErr != nil {
                return amqpErr
            }
            return errors.New("connection closed")
        case d := <-merged:
            if err := c.handleMessage(d.queue, d.Body); err != nil {
                c.Log.Error("handle message failed", "queue", d.queue, "error", err)
                _ = d.Nack(false, false) // a malformed message would loop forever if requeued
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func (c *Consumer) handleMessage(queue string, body []byte) error {
    var ev ReservationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := os.MkdirAll(c.Dir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", c.Dir, err)
    }
    f, err := os.OpenFile(filepath.Join(c.Dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(formatEvent(queue, ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    c.Log.Info("reservation event recorded", "queue", queue, "reservation_id", ev.ReservationID)
    return nil
}

func formatEvent(queue string, ev ReservationEvent) string {
    action := "confirmed"
    if queue == ReservationCancelledQueue {
        action = "cancelled"
    }
    return fmt.Sprintf("[%s] Reservation %s | reservation_id=%d | user_id=%d | room_id=%d | stay=%s..%s | guests=%d | total=%d cents\n",
        ev.OccurredAt, action, ev.ReservationID, ev.UserID, ev.RoomID, ev.CheckInDate, ev.CheckOutDate, ev.NumberOfGuests, ev.TotalPriceCents)
}
