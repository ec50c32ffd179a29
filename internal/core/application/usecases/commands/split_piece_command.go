package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrSplitPieceCommandIsNotConstructed = errors.New(
		"SplitPieceCommand must be created via NewSplitPieceCommand constructor",
	)
	ErrPieceInformationIsRequired = errors.New("piece information is required")
)

// SplitPieceCommand represents a request to split an additional piece off a
// parcel during repacking, labeled with the given information.
type SplitPieceCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	information    string

	guard guard.ConstructorGuard
}

// NewSplitPieceCommand creates a command to split a new piece off a parcel.
func NewSplitPieceCommand(trackingNumber, information string) (SplitPieceCommand, error) {
	cmd := SplitPieceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setInformation(information),
	); err != nil {
		return SplitPieceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitPieceCommand) Validate() error {
	return c.guard.Validate(ErrSplitPieceCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c SplitPieceCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Information returns the label for the new piece.
func (c SplitPieceCommand) Information() string {
	return c.information
}

func (c *SplitPieceCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}

func (c *SplitPieceCommand) setInformation(information string) error {
	if information == "" {
		return ErrPieceInformationIsRequired
	}

	c.information = information
	return nil
}
