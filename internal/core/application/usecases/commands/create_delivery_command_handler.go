package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
)

// CreateDeliveryCommandHandler handles opening new delivery runs.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery creation command.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := delivery.NewDelivery(cmd.DeliveryID(), cmd.Code())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
