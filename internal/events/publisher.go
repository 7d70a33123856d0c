// Package events publishes order lifecycle messages to RabbitMQ. Publication
// happens inside the request that caused the change; this service runs no
// consumers of its own (fulfilment listens elsewhere).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shopkit/storefront-api/internal/model"
)

const (
	orderQueueName = "storefront.orders"
	dlxExchange    = "storefront.orders.dlx"
	dlqQueueName   = "storefront.orders.dlq"

	OrderPlaced      = "order.placed"
	PaymentCompleted = "payment.completed"
)

// Setup declares the order queue with its dead-letter pair.
func Setup(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(dlxExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLX: %w", err)
	}
	if _, err := ch.QueueDeclare(dlqQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}
	if err := ch.QueueBind(dlqQueueName, orderQueueName, dlxExchange, false, nil); err != nil {
		return fmt.Errorf("bind DLQ: %w", err)
	}
	if _, err := ch.QueueDeclare(orderQueueName, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange":    dlxExchange,
		"x-dead-letter-routing-key": orderQueueName,
	}); err != nil {
		return fmt.Errorf("declare order queue: %w", err)
	}
	return nil
}

type Publisher struct {
	channel *amqp.Channel
	log     *slog.Logger
}

func NewPublisher(ch *amqp.Channel, log *slog.Logger) *Publisher {
	return &Publisher{channel: ch, log: log}
}

// Publish is fire-and-forget: a broker outage must not fail the order.
func (p *Publisher) Publish(ctx context.Context, kind string, order *model.Order) {
	if p == nil || p.channel == nil {
		return
	}
	body, err := json.Marshal(struct {
		Event string `json:"event"`
		model.OrderEvent
	}{
		Event:      kind,
		OrderEvent: model.OrderEvent{OrderID: order.ID, Status: string(order.Status)},
	})
	if err != nil {
		return
	}
	err = p.channel.PublishWithContext(ctx, "", orderQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Type:         kind,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		p.log.Warn("publish order event", "event", kind, "order_id", order.ID, "error", err)
	}
}
