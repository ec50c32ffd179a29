package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrAddPackBoxToDeliveryCommandIsNotConstructed = errors.New(
	"AddPackBoxToDeliveryCommand must be created via NewAddPackBoxToDeliveryCommand constructor",
)

// AddPackBoxToDeliveryCommand represents a request to load a pack box onto a
// delivery run.
type AddPackBoxToDeliveryCommand struct { //nolint:recvcheck //using for validation
	packBoxCode  string
	deliveryCode string

	guard guard.ConstructorGuard
}

// NewAddPackBoxToDeliveryCommand creates a command to load a pack box.
func NewAddPackBoxToDeliveryCommand(packBoxCode, deliveryCode string) (AddPackBoxToDeliveryCommand, error) {
	cmd := AddPackBoxToDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackBoxCode(packBoxCode),
		cmd.setDeliveryCode(deliveryCode),
	); err != nil {
		return AddPackBoxToDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPackBoxToDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAddPackBoxToDeliveryCommandIsNotConstructed)
}

// PackBoxCode returns the code of the pack box to load.
func (c AddPackBoxToDeliveryCommand) PackBoxCode() string {
	return c.packBoxCode
}

// DeliveryCode returns the code of the receiving delivery run.
func (c AddPackBoxToDeliveryCommand) DeliveryCode() string {
	return c.deliveryCode
}

func (c *AddPackBoxToDeliveryCommand) setPackBoxCode(code string) error {
	if code == "" {
		return ErrPackBoxCodeIsRequired
	}

	c.packBoxCode = code
	return nil
}

func (c *AddPackBoxToDeliveryCommand) setDeliveryCode(code string) error {
	if code == "" {
		return ErrDeliveryCodeIsRequired
	}

	c.deliveryCode = code
	return nil
}
