package commands

import (
	"context"
)

// AddItemToPackBoxCommandHandler handles packing arrived parcels into pack
// boxes.
type AddItemToPackBoxCommandHandler struct {
	uowFactory PackBoxTrackingUoWFactory
}

// NewAddItemToPackBoxCommandHandler creates a handler for packing parcels.
func NewAddItemToPackBoxCommandHandler(uowFactory PackBoxTrackingUoWFactory) AddItemToPackBoxCommandHandler {
	return AddItemToPackBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the parcel to the pack box. The aggregate rejects held
// parcels and parcels already sitting in another pack box.
func (h *AddItemToPackBoxCommandHandler) Handle(ctx context.Context, cmd AddItemToPackBoxCommand) error {
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

	p, err := uow.PackBoxRepository().GetByCode(ctx, cmd.PackBoxCode())
	if err != nil {
		return err
	}

	itemRepo := uow.TrackingItemRepository()
	item, err := itemRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	if err = item.AssignToPackBox(p.ID()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if err = uow.ActionLog().Record(ctx, "pack-item", cmd.TrackingNumber(), cmd.PackBoxCode()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
