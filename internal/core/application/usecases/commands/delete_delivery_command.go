package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand represents a request to delete an open delivery run.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryCode string

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand creates a command to delete an open delivery run.
func NewDeleteDeliveryCommand(deliveryCode string) (DeleteDeliveryCommand, error) {
	cmd := DeleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryCode(deliveryCode); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryCode returns the code of the delivery run to delete.
func (c DeleteDeliveryCommand) DeliveryCode() string {
	return c.deliveryCode
}

func (c *DeleteDeliveryCommand) setDeliveryCode(code string) error {
	if code == "" {
		return ErrDeliveryCodeIsRequired
	}

	c.deliveryCode = code
	return nil
}
