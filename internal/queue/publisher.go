package queue

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

const (
    confirmedQueueName = "booking.confirmed"
    cancelledQueueName = "booking.cancelled"
)

// PublishBookingConfirmed publishes a BookingConfirmedEvent to the
// booking.confirmed queue. Any error is logged and returned so the
// caller can choose to ignore it; a broker outage never fails the
// request that triggered the event. Messages are marked persistent.
func PublishBookingConfirmed(ctx context.Context, url string, event BookingConfirmedEvent) error {
    return publish(ctx, url, confirmedQueueName, event)
}

// PublishBookingCancelled publishes a BookingCancelledEvent to the
// booking.cancelled queue with the same best-effort semantics.
func PublishBookingCancelled(ctx context.Context, url string, event BookingCancelledEvent) error {
    return publish(ctx, url, cancelledQueueName, event)
}

func publish(ctx context.Context, url, queueName string, event any) error {
    conn, err := amqp.Dial(url)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        queueName, // name
        true,      // durable
        false,     // autoDelete
        false,     // exclusive
        false,     // noWait
        nil,       // args
    ); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",        // default exchange
        queueName, // routing key = queue name
        false,     // mandatory
        false,     // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
