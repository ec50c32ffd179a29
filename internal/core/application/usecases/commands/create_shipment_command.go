package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrShipmentCodeIsRequired = errors.New("shipment code is required")
)

// CreateShipmentCommand represents a request to open a new air shipment.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	code       string

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to open a new shipment.
func NewCreateShipmentCommand(shipmentID kernel.UUID, code string) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setCode(code),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Code returns the alphanumeric shipment code.
func (c CreateShipmentCommand) Code() string {
	return c.code
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *CreateShipmentCommand) setCode(code string) error {
	if code == "" {
		return ErrShipmentCodeIsRequired
	}

	c.code = code
	return nil
}
