package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/outbox"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/metrics"
)

// UpdateTrackingStatusCommandHandler handles status transitions. The state
// change, the outbox notification intent and the audit entry commit in one
// transaction; publishing happens later from the outbox drain job.
type UpdateTrackingStatusCommandHandler struct {
	uowFactory TrackingOutboxUoWFactory
	metrics    *metrics.Metrics
}

// NewUpdateTrackingStatusCommandHandler creates a handler for status transitions.
func NewUpdateTrackingStatusCommandHandler(
	uowFactory TrackingOutboxUoWFactory,
	m *metrics.Metrics,
) UpdateTrackingStatusCommandHandler {
	return UpdateTrackingStatusCommandHandler{
		uowFactory: uowFactory,
		metrics:    m,
	}
}

// Handle processes the status update. Forward moves to a piece-level stage go
// through the piece aggregation path; other moves, including rollbacks, go
// through the item transition directly.
func (h *UpdateTrackingStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.TrackingItemRepository()
	item, err := itemRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	notification, err := h.apply(item, cmd, now)
	if err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if notification != nil {
		message, msgErr := outbox.NewNotificationMessage(notification, now)
		if msgErr != nil {
			return msgErr
		}
		if msgErr = uow.OutboxRepository().Add(ctx, message); msgErr != nil {
			return msgErr
		}
	}

	if err = uow.ActionLog().Record(ctx, "status-update", cmd.TrackingNumber(), cmd.Target().String()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.StatusTransitions.WithLabelValues(cmd.Target().String()).Inc()
	return nil
}

// apply routes the move through the right aggregate operation.
func (h *UpdateTrackingStatusCommandHandler) apply(
	item *tracking.TrackingItem,
	cmd UpdateTrackingStatusCommand,
	now time.Time,
) (*tracking.Notification, error) {
	current := item.Status()
	target := cmd.Target()

	if target.IsPieceStage() && current.Before(target) {
		keys := cmd.PieceKeys()
		if len(keys) == 0 {
			keys = allPieceKeys(item)
		}
		return item.AdvancePieces(keys, target, now)
	}

	notification, err := item.Transition(target, now)
	if err != nil {
		return nil, err
	}

	// rolling back out of a piece-level stage clears the piece stamps too
	if current.IsPieceStage() && target.Before(current) {
		if err = item.RevertPieces(allPieceKeys(item), current); err != nil {
			return nil, err
		}
	}

	return notification, nil
}

func allPieceKeys(item *tracking.TrackingItem) []string {
	keys := make([]string, 0, len(item.Pieces()))
	for _, piece := range item.Pieces() {
		keys = append(keys, piece.ID().String())
	}
	return keys
}
