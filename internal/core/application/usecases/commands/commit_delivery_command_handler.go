package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/domain/services"
)

// CommitDeliveryCommandHandler handles the delivery commit cascade: the run
// and every packed parcel change in one transaction. Delivered is a terminal
// per-item timestamp, not a pipeline status, so no notifications are queued.
type CommitDeliveryCommandHandler struct {
	uowFactory DeliveryCascadeUoWFactory
	cascader   services.CommitCascader
}

// NewCommitDeliveryCommandHandler creates a handler for delivery commits.
func NewCommitDeliveryCommandHandler(
	uowFactory DeliveryCascadeUoWFactory,
	cascader services.CommitCascader,
) CommitDeliveryCommandHandler {
	return CommitDeliveryCommandHandler{
		uowFactory: uowFactory,
		cascader:   cascader,
	}
}

// Handle commits the delivery run and stamps deliveredAt on every parcel.
func (h *CommitDeliveryCommandHandler) Handle(ctx context.Context, cmd CommitDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.GetByCode(ctx, cmd.DeliveryCode())
	if err != nil {
		return err
	}

	contents, items, err := loadDeliveryContents(ctx, uow, d.ID())
	if err != nil {
		return err
	}

	if err = h.cascader.CommitDelivery(d, contents, now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	itemRepo := uow.TrackingItemRepository()
	for _, item := range items {
		if err = itemRepo.Update(ctx, item); err != nil {
			return err
		}
	}

	if err = uow.ActionLog().Record(ctx, "commit-delivery", cmd.DeliveryCode(), ""); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// loadDeliveryContents loads every pack box of the run with its parcels.
func loadDeliveryContents(
	ctx context.Context,
	uow DeliveryCascadeUoW,
	deliveryID kernel.UUID,
) ([]services.PackBoxContents, []*tracking.TrackingItem, error) {
	packBoxes, err := uow.PackBoxRepository().GetAllByDelivery(ctx, deliveryID)
	if err != nil {
		return nil, nil, err
	}

	itemRepo := uow.TrackingItemRepository()
	contents := make([]services.PackBoxContents, 0, len(packBoxes))
	items := make([]*tracking.TrackingItem, 0)

	for _, p := range packBoxes {
		packed, packedErr := itemRepo.GetAllByPackBox(ctx, p.ID())
		if packedErr != nil {
			return nil, nil, packedErr
		}

		contents = append(contents, services.PackBoxContents{PackBox: p, Items: packed})
		items = append(items, packed...)
	}

	return contents, items, nil
}
