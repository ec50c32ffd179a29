package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
)

// AddPackBoxToDeliveryCommandHandler handles loading pack boxes onto delivery
// runs, mirroring the box/shipment join invariants.
type AddPackBoxToDeliveryCommandHandler struct {
	uowFactory DeliveryCascadeUoWFactory
}

// NewAddPackBoxToDeliveryCommandHandler creates a handler for loading pack boxes.
func NewAddPackBoxToDeliveryCommandHandler(uowFactory DeliveryCascadeUoWFactory) AddPackBoxToDeliveryCommandHandler {
	return AddPackBoxToDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the pack box. The aggregate checks the join invariants:
// non-empty, not in another delivery, no held parcels. A committed delivery
// no longer accepts pack boxes.
func (h *AddPackBoxToDeliveryCommandHandler) Handle(ctx context.Context, cmd AddPackBoxToDeliveryCommand) error {
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

	d, err := uow.DeliveryRepository().GetByCode(ctx, cmd.DeliveryCode())
	if err != nil {
		return err
	}
	if d.IsCommitted() {
		return delivery.ErrAlreadyCommitted
	}

	packBoxRepo := uow.PackBoxRepository()
	p, err := packBoxRepo.GetByCode(ctx, cmd.PackBoxCode())
	if err != nil {
		return err
	}

	contents, err := uow.TrackingItemRepository().GetAllByPackBox(ctx, p.ID())
	if err != nil {
		return err
	}

	if err = p.AssignToDelivery(d.ID(), contents); err != nil {
		return err
	}

	if err = packBoxRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
