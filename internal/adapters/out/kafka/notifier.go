// Package kafka publishes drained outbox messages to a Kafka cluster.
package kafka

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/outbox"

	"github.com/segmentio/kafka-go"
)

// messageWriter abstracts kafka.Writer for testing.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Notifier implements ports.Notifier on top of a kafka.Writer.
type Notifier struct {
	w messageWriter
}

// NewNotifier creates a notifier writing to the given brokers. The topic is
// taken per message, so one writer serves every outbox topic.
func NewNotifier(brokers []string) *Notifier {
	return &Notifier{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// NewNotifierWithWriter creates a notifier over an existing writer, used in tests.
func NewNotifierWithWriter(w messageWriter) *Notifier {
	return &Notifier{w: w}
}

// Publish sends a single outbox message to its topic.
func (n *Notifier) Publish(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	if err := n.w.WriteMessages(ctx, kafka.Message{
		Topic: message.Topic(),
		Key:   []byte(message.Key()),
		Value: message.Payload(),
	}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer when it supports closing.
func (n *Notifier) Close() error {
	if closer, ok := n.w.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
