package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var (
	ErrCreateLotCommandIsNotConstructed = errors.New(
		"CreateLotCommand must be created via NewCreateLotCommand constructor",
	)
	ErrLotLabelIsRequired = errors.New("lot label is required")
)

// CreateLotCommand represents a request to open a new reporting lot.
type CreateLotCommand struct { //nolint:recvcheck //using for validation
	lotID kernel.UUID
	label string
	index int

	guard guard.ConstructorGuard
}

// NewCreateLotCommand creates a command to open a new lot.
func NewCreateLotCommand(lotID kernel.UUID, label string, index int) (CreateLotCommand, error) {
	cmd := CreateLotCommand{
		index: index,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setLotID(lotID),
		cmd.setLabel(label),
	); err != nil {
		return CreateLotCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateLotCommand) Validate() error {
	return c.guard.Validate(ErrCreateLotCommandIsNotConstructed)
}

// LotID returns the unique identifier for the new lot.
func (c CreateLotCommand) LotID() kernel.UUID {
	return c.lotID
}

// Label returns the human grouping name.
func (c CreateLotCommand) Label() string {
	return c.label
}

// Index returns the running index within the label.
func (c CreateLotCommand) Index() int {
	return c.index
}

func (c *CreateLotCommand) setLotID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.lotID = id
	return nil
}

func (c *CreateLotCommand) setLabel(label string) error {
	if label == "" {
		return ErrLotLabelIsRequired
	}

	c.label = label
	return nil
}
