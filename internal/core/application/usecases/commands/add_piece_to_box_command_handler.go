package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"
	"parceltrack/internal/core/domain/model/tracking"
)

// AddPieceToBoxCommandHandler handles packing pieces into a box. Packing the
// last loose piece promotes the parcel to the boxed status and queues its
// notification.
type AddPieceToBoxCommandHandler struct {
	uowFactory BoxTrackingUoWFactory
}

// NewAddPieceToBoxCommandHandler creates a handler for packing pieces.
func NewAddPieceToBoxCommandHandler(uowFactory BoxTrackingUoWFactory) AddPieceToBoxCommandHandler {
	return AddPieceToBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle assigns the scanned pieces to the box and stamps their boxed time.
func (h *AddPieceToBoxCommandHandler) Handle(ctx context.Context, cmd AddPieceToBoxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BoxRepository().GetByCode(ctx, cmd.BoxCode())
	if err != nil {
		return err
	}

	itemRepo := uow.TrackingItemRepository()
	item, err := itemRepo.GetByTrackingNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	if err = assignPieces(item, cmd.PieceKeys(), b.ID()); err != nil {
		return err
	}

	notification, err := item.AdvancePieces(cmd.PieceKeys(), tracking.StageBoxed, now)
	if err != nil {
		return err
	}

	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	if notification != nil {
		message, msgErr := outbox.NewNotificationMessage(notification, now)
		if msgErr != nil {
			return msgErr
		}
		if msgErr = uow.OutboxRepository().Add(ctx, message); msgErr != nil {
			return msgErr
		}
	}

	if err = uow.ActionLog().Record(ctx, "pack-piece", cmd.TrackingNumber(), cmd.BoxCode()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// assignPieces resolves the scanned keys against the item's pieces and binds
// each matched piece to the box.
func assignPieces(item *tracking.TrackingItem, keys []string, boxID kernel.UUID) error {
	missing := make([]string, 0)
	for _, key := range keys {
		matched := false
		for _, piece := range item.Pieces() {
			if piece.Matches(key) {
				if err := piece.AssignToBox(boxID); err != nil {
					return err
				}
				matched = true
				break
			}
		}
		if !matched {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &tracking.PiecesNotFoundError{TrackingNumber: item.TrackingNumber(), Missing: missing}
	}

	return nil
}
