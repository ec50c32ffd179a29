package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/outbox"
)

// Notifier publishes drained outbox messages to the downstream broker.
type Notifier interface {
	// Publish sends a single message. Publishing is at-least-once: the
	// caller only marks the message sent after Publish returns nil.
	Publish(ctx context.Context, message *outbox.Message) error
}

// ActionLog records who changed what for audit trails. Entries are
// informational and never block the command that emits them.
type ActionLog interface {
	// Record appends an audit entry inside the ambient transaction.
	Record(ctx context.Context, action, subject, detail string) error
}
