package commands

import (
	"context"
)

// DeleteShipmentCommandHandler handles deleting open shipments. Committed
// shipments must be uncommitted through box removal first.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentCascadeUoWFactory
}

// NewDeleteShipmentCommandHandler creates a handler for shipment deletion.
func NewDeleteShipmentCommandHandler(uowFactory ShipmentCascadeUoWFactory) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle deletes the shipment after unloading any remaining boxes. Nothing
// is stamped or reverted: boxes in an open shipment never received stamps.
func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetByCode(ctx, cmd.ShipmentCode())
	if err != nil {
		return err
	}
	if err = s.EnsureDeletable(); err != nil {
		return err
	}

	boxRepo := uow.BoxRepository()
	boxes, err := boxRepo.GetAllByShipment(ctx, s.ID())
	if err != nil {
		return err
	}
	for _, b := range boxes {
		b.RemoveFromShipment()
		if err = boxRepo.Update(ctx, b); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	if err = uow.ActionLog().Record(ctx, "delete-shipment", cmd.ShipmentCode(), ""); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
