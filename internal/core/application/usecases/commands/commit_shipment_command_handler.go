package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/metrics"
)

// CommitShipmentCommandHandler handles the shipment commit cascade. The
// shipment, every owning tracking item, the outbox intents and the audit
// entry change in one transaction: either the whole plane takes off or
// nothing does.
type CommitShipmentCommandHandler struct {
	uowFactory ShipmentCascadeUoWFactory
	cascader   services.CommitCascader
	metrics    *metrics.Metrics
}

// NewCommitShipmentCommandHandler creates a handler for shipment commits.
func NewCommitShipmentCommandHandler(
	uowFactory ShipmentCascadeUoWFactory,
	cascader services.CommitCascader,
	m *metrics.Metrics,
) CommitShipmentCommandHandler {
	return CommitShipmentCommandHandler{
		uowFactory: uowFactory,
		cascader:   cascader,
		metrics:    m,
	}
}

// Handle commits the shipment and stamps flyingBack on every piece of every
// box. Any held parcel or invalid piece state aborts the whole cascade.
func (h *CommitShipmentCommandHandler) Handle(ctx context.Context, cmd CommitShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetByCode(ctx, cmd.ShipmentCode())
	if err != nil {
		return err
	}

	contents, items, err := loadShipmentContents(ctx, uow, s.ID())
	if err != nil {
		return err
	}

	notifications, err := h.cascader.CommitShipment(s, contents, now)
	if err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	itemRepo := uow.TrackingItemRepository()
	for _, item := range items {
		if err = itemRepo.Update(ctx, item); err != nil {
			return err
		}
	}

	outboxRepo := uow.OutboxRepository()
	for _, notification := range notifications {
		message, msgErr := outbox.NewNotificationMessage(&notification, now)
		if msgErr != nil {
			return msgErr
		}
		if msgErr = outboxRepo.Add(ctx, message); msgErr != nil {
			return msgErr
		}
	}

	if err = uow.ActionLog().Record(ctx, "commit-shipment", cmd.ShipmentCode(), ""); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.ShipmentsCommitted.Inc()
	for _, notification := range notifications {
		h.metrics.StatusTransitions.WithLabelValues(notification.Stage.String()).Inc()
	}
	return nil
}

// loadShipmentContents loads every box of the shipment with the tracking
// items owning its pieces. The returned item slice holds each item once even
// when its pieces straddle boxes, so callers persist every item exactly once.
func loadShipmentContents(
	ctx context.Context,
	uow ShipmentCascadeUoW,
	shipmentID kernel.UUID,
) ([]services.BoxContents, []*tracking.TrackingItem, error) {
	boxes, err := uow.BoxRepository().GetAllByShipment(ctx, shipmentID)
	if err != nil {
		return nil, nil, err
	}

	itemRepo := uow.TrackingItemRepository()
	contents := make([]services.BoxContents, 0, len(boxes))
	unique := make([]*tracking.TrackingItem, 0)
	seen := make(map[string]*tracking.TrackingItem)

	for _, b := range boxes {
		owners, ownersErr := itemRepo.GetAllByBox(ctx, b.ID())
		if ownersErr != nil {
			return nil, nil, ownersErr
		}

		// reuse the already-loaded instance so every box content refers to
		// the same in-memory aggregate
		for i, owner := range owners {
			key := owner.ID().String()
			if existing, ok := seen[key]; ok {
				owners[i] = existing
				continue
			}
			seen[key] = owner
			unique = append(unique, owner)
		}

		contents = append(contents, services.BoxContents{Box: b, Items: owners})
	}

	return contents, unique, nil
}
