package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrAddItemToPackBoxCommandIsNotConstructed = errors.New(
	"AddItemToPackBoxCommand must be created via NewAddItemToPackBoxCommand constructor",
)

// AddItemToPackBoxCommand represents a request to pack an arrived parcel into
// a VN-side pack box for last-mile delivery.
type AddItemToPackBoxCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	packBoxCode    string

	guard guard.ConstructorGuard
}

// NewAddItemToPackBoxCommand creates a command to pack a parcel.
func NewAddItemToPackBoxCommand(trackingNumber, packBoxCode string) (AddItemToPackBoxCommand, error) {
	cmd := AddItemToPackBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setPackBoxCode(packBoxCode),
	); err != nil {
		return AddItemToPackBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddItemToPackBoxCommand) Validate() error {
	return c.guard.Validate(ErrAddItemToPackBoxCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c AddItemToPackBoxCommand) TrackingNumber() string {
	return c.trackingNumber
}

// PackBoxCode returns the code of the receiving pack box.
func (c AddItemToPackBoxCommand) PackBoxCode() string {
	return c.packBoxCode
}

func (c *AddItemToPackBoxCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}

func (c *AddItemToPackBoxCommand) setPackBoxCode(code string) error {
	if code == "" {
		return ErrPackBoxCodeIsRequired
	}

	c.packBoxCode = code
	return nil
}
