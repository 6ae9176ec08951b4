// Package service coordinates the placement engine with storage, the
// session store and the message broker.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/exam-seating/internal/queue"
)

// EventPublisher delivers arrangement events.  Failures are reported to the
// caller, which decides whether they matter.
type EventPublisher interface {
    PublishArrangement(ctx context.Context, ev queue.ArrangementPublishedEvent) error
}

// AMQPPublisher publishes to RabbitMQ, dialing per message.  Publishing is
// rare (once per published arrangement) so a pooled connection is not
// worth its reconnect handling.
type AMQPPublisher struct {
    URL string
}

// PublishArrangement sends ev to the seating.published queue as a
// persistent JSON message.
func (p *AMQPPublisher) PublishArrangement(ctx context.Context, ev queue.ArrangementPublishedEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        return fmt.Errorf("rabbitmq dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts; declare is idempotent.
    if _, err := ch.QueueDeclare(queue.PublishedQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("rabbitmq queue declare: %w", err)
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }
    return ch.PublishWithContext(ctx, "", queue.PublishedQueueName, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    })
}
