package commands

import (
	"context"
	"time"
)

// RequestReturnCommandHandler handles placing a return hold on a parcel.
type RequestReturnCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewRequestReturnCommandHandler creates a handler for return holds.
func NewRequestReturnCommandHandler(uowFactory TrackingUoWFactory) RequestReturnCommandHandler {
	return RequestReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the hold request. The aggregate rejects the hold once the
// parcel reached the boxed status; re-requesting an active hold is idempotent.
func (h *RequestReturnCommandHandler) Handle(ctx context.Context, cmd RequestReturnCommand) error {
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

	if err = item.RequestReturn(time.Now().UTC()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
