package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/tracking"
)

// CreateTrackingItemCommandHandler handles the business logic for parcel
// registration. New items start at the "new" status with one default piece
// and the retention deadline stamped.
type CreateTrackingItemCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewCreateTrackingItemCommandHandler creates a handler for parcel registration.
func NewCreateTrackingItemCommandHandler(uowFactory TrackingUoWFactory) CreateTrackingItemCommandHandler {
	return CreateTrackingItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command. The unique index on the tracking
// number makes duplicate registration fail with ObjectAlreadyExists.
func (h *CreateTrackingItemCommandHandler) Handle(ctx context.Context, cmd CreateTrackingItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := tracking.NewTrackingItem(cmd.TrackingItemID(), cmd.TrackingNumber(), time.Now().UTC())
	if err != nil {
		return err
	}

	item.SetAlternateRef(cmd.AlternateRef())
	item.SetChainKey(cmd.ChainKey())
	item.AssignAgent(cmd.AgentCode())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TrackingItemRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
