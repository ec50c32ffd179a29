package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand represents a request to delete an open shipment.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentCode string

	guard guard.ConstructorGuard
}

// NewDeleteShipmentCommand creates a command to delete an open shipment.
func NewDeleteShipmentCommand(shipmentCode string) (DeleteShipmentCommand, error) {
	cmd := DeleteShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setShipmentCode(shipmentCode); err != nil {
		return DeleteShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

// ShipmentCode returns the code of the shipment to delete.
func (c DeleteShipmentCommand) ShipmentCode() string {
	return c.shipmentCode
}

func (c *DeleteShipmentCommand) setShipmentCode(code string) error {
	if code == "" {
		return ErrShipmentCodeIsRequired
	}

	c.shipmentCode = code
	return nil
}
