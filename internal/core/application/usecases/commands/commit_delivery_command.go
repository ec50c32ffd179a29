package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrCommitDeliveryCommandIsNotConstructed = errors.New(
	"CommitDeliveryCommand must be created via NewCommitDeliveryCommand constructor",
)

// CommitDeliveryCommand represents a request to commit a delivery run,
// stamping every packed parcel delivered.
type CommitDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryCode string

	guard guard.ConstructorGuard
}

// NewCommitDeliveryCommand creates a command to commit a delivery run.
func NewCommitDeliveryCommand(deliveryCode string) (CommitDeliveryCommand, error) {
	cmd := CommitDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryCode(deliveryCode); err != nil {
		return CommitDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CommitDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCommitDeliveryCommandIsNotConstructed)
}

// DeliveryCode returns the code of the delivery run to commit.
func (c CommitDeliveryCommand) DeliveryCode() string {
	return c.deliveryCode
}

func (c *CommitDeliveryCommand) setDeliveryCode(code string) error {
	if code == "" {
		return ErrDeliveryCodeIsRequired
	}

	c.deliveryCode = code
	return nil
}
