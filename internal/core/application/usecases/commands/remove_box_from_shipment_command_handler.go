package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
)

// ErrBoxNotInShipment is returned when unloading a box that is not loaded.
var ErrBoxNotInShipment = errors.New("box is not loaded into any shipment")

// RemoveBoxFromShipmentCommandHandler handles unloading a box from its
// shipment. On a committed shipment this reverses the commit for the box's
// items and reopens the shipment; a shipment drained of its last box is
// deleted.
type RemoveBoxFromShipmentCommandHandler struct {
	uowFactory ShipmentCascadeUoWFactory
	cascader   services.CommitCascader
}

// NewRemoveBoxFromShipmentCommandHandler creates a handler for unloading boxes.
func NewRemoveBoxFromShipmentCommandHandler(
	uowFactory ShipmentCascadeUoWFactory,
	cascader services.CommitCascader,
) RemoveBoxFromShipmentCommandHandler {
	return RemoveBoxFromShipmentCommandHandler{
		uowFactory: uowFactory,
		cascader:   cascader,
	}
}

// Handle unloads the box, reverting flyingBack stamps for its items when the
// shipment had been committed.
func (h *RemoveBoxFromShipmentCommandHandler) Handle(ctx context.Context, cmd RemoveBoxFromShipmentCommand) error {
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

	boxRepo := uow.BoxRepository()
	b, err := boxRepo.GetByCode(ctx, cmd.BoxCode())
	if err != nil {
		return err
	}
	if b.ShipmentID() == nil {
		return errs.NewValueIsInvalidErrorWithCause("boxCode", ErrBoxNotInShipment)
	}
	shipmentID := *b.ShipmentID()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.Get(ctx, shipmentID)
	if err != nil {
		return err
	}

	itemRepo := uow.TrackingItemRepository()
	owners, err := itemRepo.GetAllByBox(ctx, b.ID())
	if err != nil {
		return err
	}

	if s.IsCommitted() {
		if err = h.cascader.UncommitShipmentBox(services.BoxContents{Box: b, Items: owners}); err != nil {
			return err
		}
		s.Uncommit()

		for _, owner := range owners {
			if err = itemRepo.Update(ctx, owner); err != nil {
				return err
			}
		}
	}

	b.RemoveFromShipment()
	if err = boxRepo.Update(ctx, b); err != nil {
		return err
	}

	remaining, err := boxRepo.GetAllByShipment(ctx, shipmentID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		if err = shipmentRepo.Delete(ctx, shipmentID); err != nil {
			return err
		}
	} else if err = shipmentRepo.Update(ctx, s); err != nil {
		return err
	}

	if err = uow.ActionLog().Record(ctx, "remove-box", cmd.BoxCode(), s.Code()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
