package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/lot"
)

// CreateLotCommandHandler handles opening new reporting lots.
type CreateLotCommandHandler struct {
	uowFactory LotUoWFactory
}

// NewCreateLotCommandHandler creates a handler for lot creation.
func NewCreateLotCommandHandler(uowFactory LotUoWFactory) CreateLotCommandHandler {
	return CreateLotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the lot creation command.
func (h *CreateLotCommandHandler) Handle(ctx context.Context, cmd CreateLotCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	l, err := lot.NewLot(cmd.LotID(), cmd.Label(), cmd.Index())
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

	if err = uow.LotRepository().Add(ctx, l); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
