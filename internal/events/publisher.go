package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/user-directory/internal/logger"
)

// Event types emitted on the user lifecycle topic.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEvent is the payload published for each successful mutation.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// messageWriter abstracts *kafka.Writer for tests.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes user lifecycle events to a Kafka topic.
// Messages are keyed by user id so events for one record stay ordered
// within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends one event to the lifecycle topic.
func (p *KafkaPublisher) Publish(ctx context.Context, event UserEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.UserID, 10)),
		Value: value,
	})
	if err != nil {
		logger.Log.Errorw("failed to publish user event",
			"type", event.Type,
			"user_id", event.UserID,
			"error", err,
		)
		return err
	}

	return nil
}

// Close flushes pending messages and releases the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
