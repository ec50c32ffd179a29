package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/shipment"
)

// AddBoxToShipmentCommandHandler handles loading boxes into shipments.
// Joining stamps nothing; stages are only stamped at commit.
type AddBoxToShipmentCommandHandler struct {
	uowFactory ShipmentCascadeUoWFactory
}

// NewAddBoxToShipmentCommandHandler creates a handler for loading boxes.
func NewAddBoxToShipmentCommandHandler(uowFactory ShipmentCascadeUoWFactory) AddBoxToShipmentCommandHandler {
	return AddBoxToShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the box. The box aggregate checks the join invariants against
// its owning items: non-empty, not in another shipment, no held parcels.
// A committed shipment no longer accepts boxes.
func (h *AddBoxToShipmentCommandHandler) Handle(ctx context.Context, cmd AddBoxToShipmentCommand) error {
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

	s, err := uow.ShipmentRepository().GetByCode(ctx, cmd.ShipmentCode())
	if err != nil {
		return err
	}
	if s.IsCommitted() {
		return shipment.ErrAlreadyCommitted
	}

	boxRepo := uow.BoxRepository()
	b, err := boxRepo.GetByCode(ctx, cmd.BoxCode())
	if err != nil {
		return err
	}

	owners, err := uow.TrackingItemRepository().GetAllByBox(ctx, b.ID())
	if err != nil {
		return err
	}

	if err = b.AssignToShipment(s.ID(), owners); err != nil {
		return err
	}

	if err = boxRepo.Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
