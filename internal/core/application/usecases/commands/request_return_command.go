package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrRequestReturnCommandIsNotConstructed = errors.New(
	"RequestReturnCommand must be created via NewRequestReturnCommand constructor",
)

// RequestReturnCommand represents a customer's request to hold a parcel for
// return. An active hold freezes every status transition until cancelled.
type RequestReturnCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewRequestReturnCommand creates a command to place a return hold on a parcel.
func NewRequestReturnCommand(trackingNumber string) (RequestReturnCommand, error) {
	cmd := RequestReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTrackingNumber(trackingNumber); err != nil {
		return RequestReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestReturnCommand) Validate() error {
	return c.guard.Validate(ErrRequestReturnCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c RequestReturnCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c *RequestReturnCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}
