package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

// Reconciler 消费侧的计数对账入口 由互动服务实现
type Reconciler interface {
	RebuildVideoCounters(ctx context.Context, videoId int64) error
}

type Consumer struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	reconciler Reconciler
}

func NewConsumer(rabbitmqURL string, reconciler Reconciler) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	return &Consumer{
		conn:       conn,
		channel:    ch,
		reconciler: reconciler,
	}, nil
}

// Start 消费互动事件 对事件涉及的视频做一次计数重建
// 对账是幂等的 重复投递只是多算一次 不会把计数算错
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		EngagementEventQueue,
		"engagement-reconciler",
		false, // auto-ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					return
				}
				c.handleDelivery(ctx, delivery)
			}
		}
	}()
	return nil
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp091.Delivery) {
	var event EngagementEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		hlog.Errorf("Failed to unmarshal engagement event: %v", err)
		_ = delivery.Nack(false, false) // 坏消息直接丢弃
		return
	}

	if event.VideoId != 0 {
		if err := c.reconciler.RebuildVideoCounters(ctx, event.VideoId); err != nil {
			hlog.Errorf("Failed to rebuild counters for video %d: %v", event.VideoId, err)
			// 只重投一次 二次失败就丢弃 毒消息不能无限空转
			_ = delivery.Nack(false, !delivery.Redelivered)
			return
		}
	}
	_ = delivery.Ack(false)
}

func (c *Consumer) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
