package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrDeliveryCodeIsRequired = errors.New("delivery code is required")
)

// CreateDeliveryCommand represents a request to open a new last-mile delivery
// run.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to open a new delivery run.
func NewCreateDeliveryCommand(deliveryID kernel.UUID, code string) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setCode(code),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery run.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Code returns the label for the delivery run.
func (c CreateDeliveryCommand) Code() string {
	return c.code
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setCode(code string) error {
	if code == "" {
		return ErrDeliveryCodeIsRequired
	}

	c.code = code
	return nil
}
