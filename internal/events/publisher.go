package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// routingKey is the key order-placed events are published under.
const routingKey = "order.placed"

// OrderPlacedEvent is the wire shape of an order-placed event.
type OrderPlacedEvent struct {
	OrderID       string    `json:"order_id"`
	UserID        *string   `json:"user_id,omitempty"`
	TotalAmount   string    `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	Occurred      time.Time `json:"occurred"`
}

// Publisher emits order events to a RabbitMQ exchange. Publishing is fire
// and forget from the caller's point of view; a broker outage must never
// block or fail a checkout.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   zerolog.Logger
}

// NewPublisher connects to the broker and declares the exchange, queue and
// binding used for order events.
func NewPublisher(cfg config.AMQPConfig, logger zerolog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	queue, err := channel.QueueDeclare(cfg.Queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, routingKey, cfg.Exchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.Queue).
		Msg("event publisher connected")

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   logger.With().Str("component", "events").Logger(),
	}, nil
}

// OrderPlaced publishes an order-placed event for the given order.
func (p *Publisher) OrderPlaced(ctx context.Context, order *model.Order) error {
	event := OrderPlacedEvent{
		OrderID:       order.ID.String(),
		TotalAmount:   order.TotalAmount.StringFixed(2),
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		Occurred:      order.CreatedAt,
	}
	if order.UserID != nil {
		id := order.UserID.String()
		event.UserID = &id
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug().Str("order_id", event.OrderID).Msg("order event published")

	return nil
}

// Close releases the channel and the underlying connection.
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}
