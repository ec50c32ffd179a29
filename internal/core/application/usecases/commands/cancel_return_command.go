package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrCancelReturnCommandIsNotConstructed = errors.New(
	"CancelReturnCommand must be created via NewCancelReturnCommand constructor",
)

// CancelReturnCommand represents a request to release an active return hold.
type CancelReturnCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewCancelReturnCommand creates a command to release a return hold.
func NewCancelReturnCommand(trackingNumber string) (CancelReturnCommand, error) {
	cmd := CancelReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTrackingNumber(trackingNumber); err != nil {
		return CancelReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelReturnCommand) Validate() error {
	return c.guard.Validate(ErrCancelReturnCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c CancelReturnCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *CancelReturnCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}
