package commands

import (
	"context"
)

// DeleteDeliveryCommandHandler handles deleting open delivery runs. Committed
// runs must be uncommitted through pack box removal first.
type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryCascadeUoWFactory
}

// NewDeleteDeliveryCommandHandler creates a handler for delivery deletion.
func NewDeleteDeliveryCommandHandler(uowFactory DeliveryCascadeUoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the delivery run after unloading any remaining pack boxes.
func (h *DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.GetByCode(ctx, cmd.DeliveryCode())
	if err != nil {
		return err
	}
	if err = d.EnsureDeletable(); err != nil {
		return err
	}

	packBoxRepo := uow.PackBoxRepository()
	packBoxes, err := packBoxRepo.GetAllByDelivery(ctx, d.ID())
	if err != nil {
		return err
	}
	for _, p := range packBoxes {
		p.RemoveFromDelivery()
		if err = packBoxRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Delete(ctx, d.ID()); err != nil {
		return err
	}

	if err = uow.ActionLog().Record(ctx, "delete-delivery", cmd.DeliveryCode(), ""); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
