package commands

import (
	"context"
)

// CancelReturnCommandHandler handles releasing a return hold.
type CancelReturnCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewCancelReturnCommandHandler creates a handler for hold releases.
func NewCancelReturnCommandHandler(uowFactory TrackingUoWFactory) CancelReturnCommandHandler {
	return CancelReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle releases the hold and unfreezes the pipeline. Releasing a parcel
// without an active hold is a no-op.
func (h *CancelReturnCommandHandler) Handle(ctx context.Context, cmd CancelReturnCommand) error {
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

	itemRepo := uow.TrackingItemRepository()
	item, err := itemRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	item.CancelReturn()

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
