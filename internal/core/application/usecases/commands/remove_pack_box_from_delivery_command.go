package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrRemovePackBoxFromDeliveryCommandIsNotConstructed = errors.New(
	"RemovePackBoxFromDeliveryCommand must be created via NewRemovePackBoxFromDeliveryCommand constructor",
)

// RemovePackBoxFromDeliveryCommand represents a request to unload a pack box
// from its delivery run.
type RemovePackBoxFromDeliveryCommand struct { //nolint:recvcheck //using for validation
	packBoxCode  string
	deliveryCode string

	guard guard.ConstructorGuard
}

// NewRemovePackBoxFromDeliveryCommand creates a command to unload a pack box.
func NewRemovePackBoxFromDeliveryCommand(packBoxCode, deliveryCode string) (RemovePackBoxFromDeliveryCommand, error) {
	cmd := RemovePackBoxFromDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackBoxCode(packBoxCode),
		cmd.setDeliveryCode(deliveryCode),
	); err != nil {
		return RemovePackBoxFromDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemovePackBoxFromDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRemovePackBoxFromDeliveryCommandIsNotConstructed)
}

// PackBoxCode returns the code of the pack box to unload.
func (c RemovePackBoxFromDeliveryCommand) PackBoxCode() string {
	return c.packBoxCode
}

// DeliveryCode returns the code of the delivery run to unload from.
func (c RemovePackBoxFromDeliveryCommand) DeliveryCode() string {
	return c.deliveryCode
}

func (c *RemovePackBoxFromDeliveryCommand) setPackBoxCode(code string) error {
	if code == "" {
		return ErrPackBoxCodeIsRequired
	}

	c.packBoxCode = code
	return nil
}

func (c *RemovePackBoxFromDeliveryCommand) setDeliveryCode(code string) error {
	if code == "" {
		return ErrDeliveryCodeIsRequired
	}

	c.deliveryCode = code
	return nil
}
