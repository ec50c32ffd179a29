package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages and
// the dead-letter table fed by the drain job.
type OutboxRepository interface {
	// Add persists a new outbox message inside the ambient transaction.
	Add(ctx context.Context, message *outbox.Message) error

	// Update persists sent/attempt bookkeeping on an existing message.
	Update(ctx context.Context, message *outbox.Message) error

	// Delete removes a message, used after dead-lettering.
	Delete(ctx context.Context, id kernel.UUID) error

	// GetAllUnsent retrieves pending messages in creation order.
	GetAllUnsent(ctx context.Context, limit int) ([]*outbox.Message, error)

	// AddFailedJob dead-letters a side effect for operator inspection.
	AddFailedJob(ctx context.Context, job *outbox.FailedJob) error
}
