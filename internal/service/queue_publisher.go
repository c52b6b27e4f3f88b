// Package service publishes reservation events to RabbitMQ.  Publish
// errors are logged and returned so callers may ignore them without
// interrupting the request that caused the event.
package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/hotel-booking/internal/logger"
    "github.com/iliyamo/hotel-booking/internal/model"
    q "github.com/iliyamo/hotel-booking/internal/queue"
)

// Publisher sends reservation events to the broker at URL.  Each publish
// dials its own connection, which keeps the publisher stateless.
type Publisher struct {
    URL string
}

func NewPublisher(url string) *Publisher { return &Publisher{URL: url} }

// PublishReservationConfirmed publishes r to reservation.confirmed.
func (p *Publisher) PublishReservationConfirmed(ctx context.Context, r model.Reservation) error {
    return p.publish(ctx, q.ReservationConfirmedQueue, q.NewReservationEvent(r, time.Now()))
}

// PublishReservationCancelled publishes r to reservation.cancelled.
func (p *Publisher) PublishReservationCancelled(ctx context.Context, r model.Reservation) error {
    return p.publish(ctx, q.ReservationCancelledQueue, q.NewReservationEvent(r, time.Now()))
}

func (p *Publisher) publish(ctx context.Context, queue string, event q.ReservationEvent) error {
    log := logger.WithContext(ctx).With("queue", queue, "reservation_id", event.ReservationID)

    body, err := json.Marshal(event)
    if err != nil {
        log.Error("rabbitmq: marshal event failed", "error", err)
        return err
    }

    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Error("rabbitmq: dial failed", "error", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Error("rabbitmq: channel open failed", "error", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // durable, not auto-deleted, not exclusive
    if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
        log.Error("rabbitmq: queue declare failed", "error", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
        log.Error("rabbitmq: publish failed", "error", err)
        return err
    }
    log.Debug("rabbitmq: event published")
    return nil
}
