package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log/slog"
    "sort"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartPublishedConsumer connects to the broker at url, declares the
// seating.published queue (durable) and appends one line per event to w.
// It reconnects with exponential backoff and returns only when ctx is
// cancelled.  Malformed messages are rejected without requeue so a bad
// payload cannot block the queue.
func StartPublishedConsumer(ctx context.Context, url string, w io.Writer, logger *slog.Logger) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            logger.Warn("published-consumer: dial failed", slog.Any("err", err), slog.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consumeLoop(ctx, conn, w, logger)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        logger.Warn("published-consumer: consume loop ended, reconnecting", slog.Any("err", err))
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

func consumeLoop(ctx context.Context, conn *amqp.Connection, w io.Writer, logger *slog.Logger) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        logger.Warn("published-consumer: set QoS failed", slog.Any("err", err))
    }
    if _, err := ch.QueueDeclare(PublishedQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(PublishedQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := HandleMessage(d.Body, w); err != nil {
                logger.Error("published-consumer: handle message failed", slog.Any("err", err))
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one ArrangementPublishedEvent and writes its
// summary line to w.
func HandleMessage(body []byte, w io.Writer) error {
    var ev ArrangementPublishedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if _, err := io.WriteString(w, FormatEvent(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatEvent renders ev as a single newline-terminated log line.  Halls are
// listed in ID order.
func FormatEvent(ev ArrangementPublishedEvent) string {
    halls := make([]string, 0, len(ev.SeatsPerHall))
    for id := range ev.SeatsPerHall {
        halls = append(halls, id)
    }
    sort.Strings(halls)
    per := make([]string, len(halls))
    for i, id := range halls {
        per[i] = fmt.Sprintf("%s:%d", id, ev.SeatsPerHall[id])
    }
    return fmt.Sprintf("[%s] Arrangement published | arrangement_id=%d | session=%s | seed=%d | seated=%d | unseated=%d | conflicts=%d | by=%q | halls=[%s]\n",
        ev.PublishedAt, ev.ArrangementID, ev.SessionID, ev.Seed, ev.Seated, ev.Unseated, ev.Conflicts, ev.PublishedBy, strings.Join(per, ","))
}
