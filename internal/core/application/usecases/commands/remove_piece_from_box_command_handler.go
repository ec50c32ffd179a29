package commands

import (
	"context"
	"strings"

	"parceltrack/internal/core/domain/model/tracking"
)

// RemovePieceFromBoxCommandHandler handles unpacking pieces from their box.
// The parcel's boxed status recedes because at least one piece lost its stamp.
type RemovePieceFromBoxCommandHandler struct {
	uowFactory TrackingAuditUoWFactory
}

// NewRemovePieceFromBoxCommandHandler creates a handler for unpacking pieces.
func NewRemovePieceFromBoxCommandHandler(uowFactory TrackingAuditUoWFactory) RemovePieceFromBoxCommandHandler {
	return RemovePieceFromBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle clears the boxed stamp and the box reference on the scanned pieces.
func (h *RemovePieceFromBoxCommandHandler) Handle(ctx context.Context, cmd RemovePieceFromBoxCommand) error {
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

	if err = item.RevertPieces(cmd.PieceKeys(), tracking.StageBoxed); err != nil {
		return err
	}
	for _, key := range cmd.PieceKeys() {
		for _, piece := range item.Pieces() {
			if piece.Matches(key) {
				piece.RemoveFromBox()
				break
			}
		}
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if err = uow.ActionLog().Record(ctx, "unpack-piece", cmd.TrackingNumber(), strings.Join(cmd.PieceKeys(), ",")); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
