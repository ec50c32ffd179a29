package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreatePackBoxCommandIsNotConstructed = errors.New(
		"CreatePackBoxCommand must be created via NewCreatePackBoxCommand constructor",
	)
	ErrPackBoxCodeIsRequired = errors.New("pack box code is required")
)

// CreatePackBoxCommand represents a request to open a new VN-side pack box.
type CreatePackBoxCommand struct { //nolint:recvcheck //using for validation
	packBoxID kernel.UUID
	code      string

	guard guard.ConstructorGuard
}

// NewCreatePackBoxCommand creates a command to open a new pack box.
func NewCreatePackBoxCommand(packBoxID kernel.UUID, code string) (CreatePackBoxCommand, error) {
	cmd := CreatePackBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackBoxID(packBoxID),
		cmd.setCode(code),
	); err != nil {
		return CreatePackBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePackBoxCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackBoxCommandIsNotConstructed)
}

// PackBoxID returns the unique identifier for the new pack box.
func (c CreatePackBoxCommand) PackBoxID() kernel.UUID {
	return c.packBoxID
}

// Code returns the label for the pack box.
func (c CreatePackBoxCommand) Code() string {
	return c.code
}

func (c *CreatePackBoxCommand) setPackBoxID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.packBoxID = id
	return nil
}

func (c *CreatePackBoxCommand) setCode(code string) error {
	if code == "" {
		return ErrPackBoxCodeIsRequired
	}

	c.code = code
	return nil
}
