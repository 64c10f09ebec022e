package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corray333/tutti-amici/internal/dal/rabbitmq"
	"github.com/corray333/tutti-amici/internal/service/models/orderevent"
	"github.com/streadway/amqp"
)

// publisher is satisfied by *amqp.Channel.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// OrderEventsRabbitMQRepository publishes order events to a RabbitMQ queue.
type OrderEventsRabbitMQRepository struct {
	publisher publisher
	queue     string
}

// NewOrderEventsRabbitMQRepository declares queueName and returns a repository publishing to it.
func NewOrderEventsRabbitMQRepository(client *rabbitmq.Client, queueName string) (*OrderEventsRabbitMQRepository, error) {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    true,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return &OrderEventsRabbitMQRepository{
		publisher: client.Channel(),
		queue:     queue.Name,
	}, nil
}

// PublishOrderCreated publishes event to the default exchange routed to the queue.
func (r *OrderEventsRabbitMQRepository) PublishOrderCreated(_ context.Context, event orderevent.OrderCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = r.publisher.Publish(
		"",
		r.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         "order.created",
			MessageId:    event.ID,
			Timestamp:    event.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}
