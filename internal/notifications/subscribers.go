package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sdtech_backend/internal/models"
	"sdtech_backend/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const sinkTimeout = 3 * time.Second

// LogSubscriber writes low-stock and promotion alerts to the application log.
func LogSubscriber(_ context.Context, ev Event) error {
	switch p := ev.Payload.(type) {
	case *models.Product:
		utils.LogWarn("Low stock alert", map[string]interface{}{
			"product_id": p.ID, "product": p.Name, "amount": p.Amount, "min_stock": p.MinStock,
		})
	case *models.Promotion:
		utils.LogInfo("Promotion activated", map[string]interface{}{
			"promotion_id": p.ID, "promotion": p.Name, "discount": p.Discount.String(),
		})
	default:
		utils.LogInfo("Notification", map[string]interface{}{"event": ev.Name})
	}
	return nil
}

// messageWriter is the part of *kafka.Writer the Kafka sink needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewKafkaWriter builds a writer for the notification topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           sinkTimeout,
	}
}

// KafkaSubscriber publishes each event as JSON, keyed by event name.
func KafkaSubscriber(w messageWriter) Handler {
	return func(ctx context.Context, ev Event) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("kafka: json.Marshal failed: %w", err)
		}
		ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
		defer cancel()
		if err := w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.Name), Value: data}); err != nil {
			return fmt.Errorf("kafka: write failed: %w", err)
		}
		return nil
	}
}

// RedisSubscriber PUBLISHes each event as JSON on channel.
func RedisSubscriber(client redis.UniversalClient, channel string) Handler {
	return func(ctx context.Context, ev Event) error {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("redis: json.Marshal failed: %w", err)
		}
		ctx, cancel := context.WithTimeout(ctx, sinkTimeout)
		defer cancel()
		if err := client.Publish(ctx, channel, data).Err(); err != nil {
			return fmt.Errorf("redis: publish to %s failed: %w", channel, err)
		}
		return nil
	}
}
