package commands

import (
	"context"
	"log/slog"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/metrics"
)

const (
	// dispatchBatchSize bounds one drain pass so a backlog cannot hold the
	// transaction open indefinitely.
	dispatchBatchSize = 100

	// maxDispatchAttempts is the publish failure count after which a message
	// is dead-lettered instead of retried.
	maxDispatchAttempts = 5
)

// DispatchOutboxCommandHandler drains pending outbox messages to the broker.
// A message that keeps failing is moved to the failed job table so one
// poisoned payload cannot stall the rest of the queue.
type DispatchOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
	metrics    *metrics.Metrics
}

// NewDispatchOutboxCommandHandler creates a handler for outbox draining.
func NewDispatchOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	notifier ports.Notifier,
	m *metrics.Metrics,
) DispatchOutboxCommandHandler {
	return DispatchOutboxCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		metrics:    m,
	}
}

// Handle publishes pending messages in creation order. Publishing is
// at-least-once: a message is only marked sent after the broker accepts it,
// so a crash between publish and commit results in a duplicate, never a loss.
func (h *DispatchOutboxCommandHandler) Handle(ctx context.Context, cmd DispatchOutboxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	pending, err := outboxRepo.GetAllUnsent(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	for _, message := range pending {
		if publishErr := h.notifier.Publish(ctx, message); publishErr != nil {
			if err = h.handleFailure(ctx, outboxRepo, message, publishErr, now); err != nil {
				return err
			}
			continue
		}

		message.MarkSent(now)
		if err = outboxRepo.Update(ctx, message); err != nil {
			return err
		}
		h.metrics.NotificationsSent.Inc()
	}

	return uow.Commit(ctx)
}

// handleFailure records the failed attempt, dead-lettering the message once
// it exhausts its retries.
func (h *DispatchOutboxCommandHandler) handleFailure(
	ctx context.Context,
	outboxRepo ports.OutboxRepository,
	message *outbox.Message,
	publishErr error,
	now time.Time,
) error {
	message.MarkFailed()

	slog.Warn("outbox publish failed",
		"messageID", message.ID().String(),
		"topic", message.Topic(),
		"attempts", message.Attempts(),
		"error", publishErr,
	)
	h.metrics.ErrorsCount.WithLabelValues("dispatch-outbox").Inc()

	if message.Attempts() < maxDispatchAttempts {
		return outboxRepo.Update(ctx, message)
	}

	// the message key is the tracking number, kept so the operator can
	// trace which parcel lost its notification
	job, err := outbox.NewFailedJob(
		kernel.NewUUID(),
		"outbox-dispatch",
		message.Key(),
		message.Payload(),
		publishErr.Error(),
		now,
	)
	if err != nil {
		return err
	}

	if err = outboxRepo.AddFailedJob(ctx, job); err != nil {
		return err
	}
	if err = outboxRepo.Delete(ctx, message.ID()); err != nil {
		return err
	}
	h.metrics.NotificationsDead.Inc()

	slog.Error("outbox message dead-lettered",
		"messageID", message.ID().String(),
		"topic", message.Topic(),
	)

	return nil
}
