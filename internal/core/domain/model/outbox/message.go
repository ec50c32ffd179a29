// Package outbox contains the transactional outbox entities. Commands write
// notification intents as outbox messages inside the same transaction as the
// state change; a background job drains unsent messages to the broker.
package outbox

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrMessageIsNotConstructed is returned when using an improperly initialized Message.
var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage")

// Message is a pending or delivered notification intent.
type Message struct {
	id        kernel.UUID
	topic     string
	key       string
	payload   []byte
	createdAt time.Time
	sentAt    *time.Time
	attempts  int

	guard kernel.ConstructorGuard
}

// NewMessage creates an unsent outbox message for the given topic and key.
func NewMessage(id kernel.UUID, topic, key string, payload []byte, now time.Time) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Message{
		id:        id,
		topic:     topic,
		key:       key,
		payload:   payload,
		createdAt: now,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// RestoreMessage reconstructs an outbox message from persistent storage.
func RestoreMessage(
	id kernel.UUID, topic, key string, payload []byte,
	createdAt time.Time, sentAt *time.Time, attempts int,
) (*Message, error) {
	m, err := NewMessage(id, topic, key, payload, createdAt)
	if err != nil {
		return nil, err
	}
	m.sentAt = sentAt
	m.attempts = attempts
	return m, nil
}

// Validate ensures the message was created through a constructor.
func (m *Message) Validate() error {
	if m == nil {
		return ErrMessageIsNotConstructed
	}
	return m.guard.Validate(ErrMessageIsNotConstructed)
}

// ID returns the message identity.
func (m *Message) ID() kernel.UUID { return m.id }

// Topic returns the broker topic the message is bound for.
func (m *Message) Topic() string { return m.topic }

// Key returns the partition key, usually the tracking number.
func (m *Message) Key() string { return m.key }

// Payload returns the serialized notification body.
func (m *Message) Payload() []byte { return m.payload }

// CreatedAt returns when the intent was recorded.
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// SentAt returns when the message reached the broker, or nil while pending.
func (m *Message) SentAt() *time.Time {
	if m.sentAt == nil {
		return nil
	}
	at := *m.sentAt
	return &at
}

// Attempts returns how many publish attempts have been made.
func (m *Message) Attempts() int { return m.attempts }

// MarkSent records a successful publish.
func (m *Message) MarkSent(now time.Time) {
	m.attempts++
	at := now
	m.sentAt = &at
}

// MarkFailed records an unsuccessful publish attempt.
func (m *Message) MarkFailed() {
	m.attempts++
}
