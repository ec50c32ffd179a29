package commands

import (
	"context"
)

// DeletePieceCommandHandler handles removing a piece from a parcel.
type DeletePieceCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewDeletePieceCommandHandler creates a handler for piece removals.
func NewDeletePieceCommandHandler(uowFactory TrackingUoWFactory) DeletePieceCommandHandler {
	return DeletePieceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal. The aggregate rejects removing the last piece
// or a piece already sitting in a box.
func (h *DeletePieceCommandHandler) Handle(ctx context.Context, cmd DeletePieceCommand) error {
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

	if err = item.DeletePiece(cmd.PieceID()); err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
