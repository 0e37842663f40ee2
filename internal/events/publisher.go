package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"crm-platform/internal/activity"
	"crm-platform/pkg/logger"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

const producerName = "crm-api"

// Publisher sends activity events to a topic exchange.
// It satisfies activity.Publisher.
type Publisher struct {
	conn     *amqp091.Connection
	exchange string
	log      *slog.Logger
}

// Dial connects, declares the durable topic exchange and checks the broker accepts confirms.
func Dial(url, exchange string, log *slog.Logger) (*Publisher, error) {
	if url == "" || exchange == "" {
		return nil, errors.New("events: url and exchange are required")
	}
	if log == nil {
		log = slog.Default()
	}
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, exchange: exchange, log: log}, nil
}

// DialWithRetry retries Dial with exponential backoff until ctx is done or attempts run out.
func DialWithRetry(ctx context.Context, url, exchange string, log *slog.Logger, attempts int) (*Publisher, error) {
	backoff := 500 * time.Millisecond
	var lastErr error
	for i := 0; i < attempts; i++ {
		p, err := Dial(url, exchange, log)
		if err == nil {
			return p, nil
		}
		lastErr = err
		if log != nil {
			log.Warn("amqp dial failed", "attempt", i+1, "err", err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 8*time.Second {
			backoff *= 2
		}
	}
	return nil, lastErr
}

func (p *Publisher) Publish(ctx context.Context, e activity.Event) error {
	env := FromActivity(e, producerName, logger.RequestID(ctx))
	body, err := json.Marshal(env)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	msgID := env.Meta.ID
	if msgID == "" {
		msgID = uuid.NewString()
	}
	cid := msgID
	if env.Meta.CorrelationID != nil {
		cid = *env.Meta.CorrelationID
	}

	key := RoutingKey(e.Action)
	err = ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp091.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp091.Persistent,
		MessageId:     msgID,
		CorrelationId: cid,
		Timestamp:     time.Now(),
		Body:          body,
	})
	if err == nil {
		p.log.Debug("published", slog.String("key", key), slog.String("exchange", p.exchange))
	}
	return err
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
