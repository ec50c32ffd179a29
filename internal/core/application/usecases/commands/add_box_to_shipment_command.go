package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrAddBoxToShipmentCommandIsNotConstructed = errors.New(
	"AddBoxToShipmentCommand must be created via NewAddBoxToShipmentCommand constructor",
)

// AddBoxToShipmentCommand represents a request to load a closed box into a
// shipment.
type AddBoxToShipmentCommand struct { //nolint:recvcheck //using for validation
	boxCode      string
	shipmentCode string

	guard guard.ConstructorGuard
}

// NewAddBoxToShipmentCommand creates a command to load a box into a shipment.
func NewAddBoxToShipmentCommand(boxCode, shipmentCode string) (AddBoxToShipmentCommand, error) {
	cmd := AddBoxToShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBoxCode(boxCode),
		cmd.setShipmentCode(shipmentCode),
	); err != nil {
		return AddBoxToShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddBoxToShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAddBoxToShipmentCommandIsNotConstructed)
}

// BoxCode returns the code of the box to load.
func (c AddBoxToShipmentCommand) BoxCode() string {
	return c.boxCode
}

// ShipmentCode returns the code of the receiving shipment.
func (c AddBoxToShipmentCommand) ShipmentCode() string {
	return c.shipmentCode
}

func (c *AddBoxToShipmentCommand) setBoxCode(code string) error {
	if code == "" {
		return ErrBoxCodeIsRequired
	}

	c.boxCode = code
	return nil
}

func (c *AddBoxToShipmentCommand) setShipmentCode(code string) error {
	if code == "" {
		return ErrShipmentCodeIsRequired
	}

	c.shipmentCode = code
	return nil
}
