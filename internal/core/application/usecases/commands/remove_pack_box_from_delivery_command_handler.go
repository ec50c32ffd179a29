package commands

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"
)

// ErrPackBoxNotInDelivery is returned when unloading a pack box that is not
// loaded onto any run.
var ErrPackBoxNotInDelivery = errors.New("pack box is not loaded into any delivery")

// RemovePackBoxFromDeliveryCommandHandler handles unloading a pack box from
// its delivery run. On a committed run this clears deliveredAt for the packed
// parcels and reopens the run; a run drained of its last pack box is deleted.
type RemovePackBoxFromDeliveryCommandHandler struct {
	uowFactory DeliveryCascadeUoWFactory
	cascader   services.CommitCascader
}

// NewRemovePackBoxFromDeliveryCommandHandler creates a handler for unloading
// pack boxes.
func NewRemovePackBoxFromDeliveryCommandHandler(
	uowFactory DeliveryCascadeUoWFactory,
	cascader services.CommitCascader,
) RemovePackBoxFromDeliveryCommandHandler {
	return RemovePackBoxFromDeliveryCommandHandler{
		uowFactory: uowFactory,
		cascader:   cascader,
	}
}

// Handle unloads the pack box, reverting deliveredAt stamps for its parcels
// when the run had been committed.
func (h *RemovePackBoxFromDeliveryCommandHandler) Handle(ctx context.Context, cmd RemovePackBoxFromDeliveryCommand) error {
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

	packBoxRepo := uow.PackBoxRepository()
	p, err := packBoxRepo.GetByCode(ctx, cmd.PackBoxCode())
	if err != nil {
		return err
	}
	if p.DeliveryID() == nil {
		return errs.NewValueIsInvalidErrorWithCause("packBoxCode", ErrPackBoxNotInDelivery)
	}
	deliveryID := *p.DeliveryID()

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, deliveryID)
	if err != nil {
		return err
	}

	itemRepo := uow.TrackingItemRepository()
	packed, err := itemRepo.GetAllByPackBox(ctx, p.ID())
	if err != nil {
		return err
	}

	if d.IsCommitted() {
		h.cascader.UncommitDeliveryPackBox(services.PackBoxContents{PackBox: p, Items: packed})
		d.Uncommit()

		for _, item := range packed {
			if err = itemRepo.Update(ctx, item); err != nil {
				return err
			}
		}
	}

	p.RemoveFromDelivery()
	if err = packBoxRepo.Update(ctx, p); err != nil {
		return err
	}

	remaining, err := packBoxRepo.GetAllByDelivery(ctx, deliveryID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		if err = deliveryRepo.Delete(ctx, deliveryID); err != nil {
			return err
		}
	} else if err = deliveryRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.ActionLog().Record(ctx, "remove-pack-box", cmd.PackBoxCode(), d.Code()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
