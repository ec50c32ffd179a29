package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrRemoveBoxFromShipmentCommandIsNotConstructed = errors.New(
	"RemoveBoxFromShipmentCommand must be created via NewRemoveBoxFromShipmentCommand constructor",
)

// RemoveBoxFromShipmentCommand represents a request to unload a box from its
// shipment, reverting any commit stamps its pieces received.
type RemoveBoxFromShipmentCommand struct { //nolint:recvcheck //using for validation
	boxCode string

	guard guard.ConstructorGuard
}

// NewRemoveBoxFromShipmentCommand creates a command to unload a box.
func NewRemoveBoxFromShipmentCommand(boxCode string) (RemoveBoxFromShipmentCommand, error) {
	cmd := RemoveBoxFromShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setBoxCode(boxCode); err != nil {
		return RemoveBoxFromShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveBoxFromShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRemoveBoxFromShipmentCommandIsNotConstructed)
}

// BoxCode returns the code of the box to unload.
func (c RemoveBoxFromShipmentCommand) BoxCode() string {
	return c.boxCode
}

func (c *RemoveBoxFromShipmentCommand) setBoxCode(code string) error {
	if code == "" {
		return ErrBoxCodeIsRequired
	}

	c.boxCode = code
	return nil
}
