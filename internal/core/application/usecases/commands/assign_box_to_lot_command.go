package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrAssignBoxToLotCommandIsNotConstructed = errors.New(
	"AssignBoxToLotCommand must be created via NewAssignBoxToLotCommand constructor",
)

// AssignBoxToLotCommand represents a request to group a box into a lot for
// weight and report rollups.
type AssignBoxToLotCommand struct { //nolint:recvcheck //using for validation
	boxCode string
	lotID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignBoxToLotCommand creates a command to group a box into a lot.
func NewAssignBoxToLotCommand(boxCode string, lotID kernel.UUID) (AssignBoxToLotCommand, error) {
	cmd := AssignBoxToLotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBoxCode(boxCode),
		cmd.setLotID(lotID),
	); err != nil {
		return AssignBoxToLotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignBoxToLotCommand) Validate() error {
	return c.guard.Validate(ErrAssignBoxToLotCommandIsNotConstructed)
}

// BoxCode returns the code of the box to group.
func (c AssignBoxToLotCommand) BoxCode() string {
	return c.boxCode
}

// LotID returns the identifier of the receiving lot.
func (c AssignBoxToLotCommand) LotID() kernel.UUID {
	return c.lotID
}

func (c *AssignBoxToLotCommand) setBoxCode(code string) error {
	if code == "" {
		return ErrBoxCodeIsRequired
	}

	c.boxCode = code
	return nil
}

func (c *AssignBoxToLotCommand) setLotID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.lotID = id
	return nil
}
