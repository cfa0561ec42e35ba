package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scroll-feed/pkg/config"
	"scroll-feed/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	FeedEventsExchange      = "feed_events"
	DropPublishedQueueName  = "drop_published_queue"
	DropPublishedRoutingKey = "drop_published"
)

// DropPublishedEvent announces a scheduled post that became visible.
type DropPublishedEvent struct {
	Type        string    `json:"type"`
	PostID      string    `json:"post_id"`
	PublishedAt time.Time `json:"published_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		FeedEventsExchange, // name
		"direct",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		DropPublishedQueueName, // name
		true,                   // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		DropPublishedQueueName,  // queue name
		DropPublishedRoutingKey, // routing key
		FeedEventsExchange,      // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishDropPublished emits one persistent event per promoted post.
func (c *Client) PublishDropPublished(ctx context.Context, postIDs []string, publishedAt time.Time) error {
	for _, postID := range postIDs {
		body, err := json.Marshal(DropPublishedEvent{
			Type:        DropPublishedRoutingKey,
			PostID:      postID,
			PublishedAt: publishedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		err = c.channel.PublishWithContext(ctx,
			FeedEventsExchange,      // exchange
			DropPublishedRoutingKey, // routing key
			false,                   // mandatory
			false,                   // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				Body:         body,
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
			},
		)
		if err != nil {
			c.logger.Error("[RABBITMQ] Failed to publish drop event post_id=%s: %v", postID, err)
			return fmt.Errorf("failed to publish message: %w", err)
		}
	}

	c.logger.Info("[RABBITMQ] Published %d drop events to exchange=%s", len(postIDs), FeedEventsExchange)
	return nil
}
