package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrCommitShipmentCommandIsNotConstructed = errors.New(
	"CommitShipmentCommand must be created via NewCommitShipmentCommand constructor",
)

// CommitShipmentCommand represents a request to commit a shipment: the plane
// took off, every piece in every box is flying back.
//
// Example:
//
//	cmd, err := NewCommitShipmentCommand("AIR2024A")
//	if err != nil {
//	    return err
//	}
//
//	handler := NewCommitShipmentCommandHandler(uowFactory, cascader)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("commit rejected: %w", err)
//	}
type CommitShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentCode string

	guard guard.ConstructorGuard
}

// NewCommitShipmentCommand creates a command to commit a shipment.
func NewCommitShipmentCommand(shipmentCode string) (CommitShipmentCommand, error) {
	cmd := CommitShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setShipmentCode(shipmentCode); err != nil {
		return CommitShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CommitShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCommitShipmentCommandIsNotConstructed)
}

// ShipmentCode returns the code of the shipment to commit.
func (c CommitShipmentCommand) ShipmentCode() string {
	return c.shipmentCode
}

func (c *CommitShipmentCommand) setShipmentCode(code string) error {
	if code == "" {
		return ErrShipmentCodeIsRequired
	}

	c.shipmentCode = code
	return nil
}
