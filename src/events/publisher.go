package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "fintrack.events"
	QueueName    = "transaction-events"
)

// Publisher emits transaction lifecycle events to a durable AMQP queue.
// A nil *Publisher is a valid no-op: the HTTP layer never depends on a
// broker being configured.
type Publisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

type TransactionEvent struct {
	Event         string    `json:"event"`
	TransactionID string    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &Publisher{conn: conn, channel: channel}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return p, nil
}

func (p *Publisher) setup() error {
	err := p.channel.ExchangeDeclare(
		ExchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		QueueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = p.channel.QueueBind(
		QueueName,    // queue name
		QueueName,    // routing key
		ExchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (p *Publisher) publish(ctx context.Context, event, transactionID string) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(TransactionEvent{
		Event:         event,
		TransactionID: transactionID,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		ExchangeName, // exchange
		QueueName,    // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	return nil
}

func (p *Publisher) TransactionCreated(ctx context.Context, id string) error {
	return p.publish(ctx, "transaction.created", id)
}

func (p *Publisher) TransactionUpdated(ctx context.Context, id string) error {
	return p.publish(ctx, "transaction.updated", id)
}

func (p *Publisher) TransactionDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, "transaction.deleted", id)
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
