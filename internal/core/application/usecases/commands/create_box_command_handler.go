package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/box"
)

// CreateBoxCommandHandler handles opening new transit boxes.
type CreateBoxCommandHandler struct {
	uowFactory BoxUoWFactory
}

// NewCreateBoxCommandHandler creates a handler for box creation.
func NewCreateBoxCommandHandler(uowFactory BoxUoWFactory) CreateBoxCommandHandler {
	return CreateBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the box creation command. Box codes are unique; reusing
// one fails with ObjectAlreadyExists.
func (h *CreateBoxCommandHandler) Handle(ctx context.Context, cmd CreateBoxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := box.NewBox(cmd.BoxID(), cmd.Code())
	if err != nil {
		return err
	}
	if cmd.WeightKg() > 0 {
		if err = b.SetWeight(cmd.WeightKg()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.BoxRepository().Add(ctx, b); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
