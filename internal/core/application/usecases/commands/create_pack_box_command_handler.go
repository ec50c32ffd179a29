package commands

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
)

// CreatePackBoxCommandHandler handles opening new pack boxes.
type CreatePackBoxCommandHandler struct {
	uowFactory PackBoxUoWFactory
}

// NewCreatePackBoxCommandHandler creates a handler for pack box creation.
func NewCreatePackBoxCommandHandler(uowFactory PackBoxUoWFactory) CreatePackBoxCommandHandler {
	return CreatePackBoxCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the pack box creation command.
func (h *CreatePackBoxCommandHandler) Handle(ctx context.Context, cmd CreatePackBoxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := delivery.NewPackBox(cmd.PackBoxID(), cmd.Code())
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

	if err = uow.PackBoxRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
