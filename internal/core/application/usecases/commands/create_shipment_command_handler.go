package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler handles opening new shipments.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment creation command. The aggregate enforces the
// alphanumeric code format; the unique index rejects reused codes.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), cmd.Code())
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

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
