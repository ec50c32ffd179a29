package commands

import (
	"context"
)

// AssignBoxToLotCommandHandler handles grouping boxes into lots.
type AssignBoxToLotCommandHandler struct {
	uowFactory BoxLotUoWFactory
}

// NewAssignBoxToLotCommandHandler creates a handler for lot assignment.
func NewAssignBoxToLotCommandHandler(uowFactory BoxLotUoWFactory) AssignBoxToLotCommandHandler {
	return AssignBoxToLotCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle groups the box into the lot. Lots carry no commit semantics, so no
// stamps or notifications are involved.
func (h *AssignBoxToLotCommandHandler) Handle(ctx context.Context, cmd AssignBoxToLotCommand) error {
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

	l, err := uow.LotRepository().Get(ctx, cmd.LotID())
	if err != nil {
		return err
	}

	boxRepo := uow.BoxRepository()
	b, err := boxRepo.GetByCode(ctx, cmd.BoxCode())
	if err != nil {
		return err
	}

	if err = b.AssignToLot(l.ID()); err != nil {
		return err
	}

	if err = boxRepo.Update(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
