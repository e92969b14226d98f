package emailqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/solterra/storefront/internal/domain/model"
)

// Publisher enqueues lifecycle email jobs on a durable AMQP queue. A
// consumer elsewhere renders and sends the actual emails.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

type jobPayload struct {
	OrderID string `json:"orderId"`
	Email   string `json:"email"`
	Kind    string `json:"kind"`
}

// NewPublisher dials the broker and declares the queue.
func NewPublisher(url, queue string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	return &Publisher{conn: conn, channel: channel, queue: queue, logger: logger}, nil
}

// Publish enqueues one email job as persistent JSON.
func (p *Publisher) Publish(ctx context.Context, job model.EmailJob) error {
	body, err := json.Marshal(jobPayload{
		OrderID: job.OrderID,
		Email:   job.Email,
		Kind:    string(job.Kind),
	})
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		p.logger.Error("email job publish failed",
			slog.String("order", job.OrderID),
			slog.String("kind", string(job.Kind)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
