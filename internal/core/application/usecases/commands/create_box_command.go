package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateBoxCommandIsNotConstructed = errors.New(
		"CreateBoxCommand must be created via NewCreateBoxCommand constructor",
	)
	ErrBoxCodeIsRequired = errors.New("box code is required")
)

// CreateBoxCommand represents a request to open a new transit box in the US
// warehouse.
type CreateBoxCommand struct { //nolint:recvcheck //using for validation
	boxID    kernel.UUID
	code     string
	weightKg float64

	guard guard.ConstructorGuard
}

// NewCreateBoxCommand creates a command to open a new transit box.
func NewCreateBoxCommand(boxID kernel.UUID, code string, weightKg float64) (CreateBoxCommand, error) {
	cmd := CreateBoxCommand{
		weightKg: weightKg,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBoxID(boxID),
		cmd.setCode(code),
	); err != nil {
		return CreateBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBoxCommand) Validate() error {
	return c.guard.Validate(ErrCreateBoxCommandIsNotConstructed)
}

// BoxID returns the unique identifier for the new box.
func (c CreateBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

// Code returns the warehouse label for the box.
func (c CreateBoxCommand) Code() string {
	return c.code
}

// WeightKg returns the recorded scale weight, zero when not yet weighed.
func (c CreateBoxCommand) WeightKg() float64 {
	return c.weightKg
}

func (c *CreateBoxCommand) setBoxID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.boxID = id
	return nil
}

func (c *CreateBoxCommand) setCode(code string) error {
	if code == "" {
		return ErrBoxCodeIsRequired
	}

	c.code = code
	return nil
}
