package commands

import (
	"context"
)

// SplitPieceCommandHandler handles splitting a new piece off a parcel.
type SplitPieceCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewSplitPieceCommandHandler creates a handler for piece splits.
func NewSplitPieceCommandHandler(uowFactory TrackingUoWFactory) SplitPieceCommandHandler {
	return SplitPieceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the split command. Splitting is rejected by the aggregate
// once the parcel has been boxed.
func (h *SplitPieceCommandHandler) Handle(ctx context.Context, cmd SplitPieceCommand) error {
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

	if _, err = item.SplitPiece(cmd.Information()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
