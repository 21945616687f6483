package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	// 声明exchange和queue
	if err := producer.setupTopology(); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}
	return producer, nil
}

func (p *Producer) setupTopology() error {
	err := p.channel.ExchangeDeclare(
		EngagementEventExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare engagement event exchange: %w", err)
	}

	queue, err := p.channel.QueueDeclare(
		EngagementEventQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare engagement event queue: %w", err)
	}

	if err := p.channel.QueueBind(queue.Name, EngagementRoutingKey, EngagementEventExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind engagement event queue: %w", err)
	}
	return nil
}

func (p *Producer) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		EngagementEventExchange,
		EngagementRoutingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventId,
			Timestamp:    time.Unix(event.Timestamp, 0),
		})
	if err != nil {
		return fmt.Errorf("failed to publish engagement event: %w", err)
	}
	return nil
}

func (p *Producer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
