package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var ErrRemovePieceFromBoxCommandIsNotConstructed = errors.New(
	"RemovePieceFromBoxCommand must be created via NewRemovePieceFromBoxCommand constructor",
)

// RemovePieceFromBoxCommand represents a request to take scanned pieces back
// out of their box, clearing their boxed stamps.
type RemovePieceFromBoxCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	pieceKeys      []string

	guard guard.ConstructorGuard
}

// NewRemovePieceFromBoxCommand creates a command to unpack pieces.
func NewRemovePieceFromBoxCommand(trackingNumber string, pieceKeys []string) (RemovePieceFromBoxCommand, error) {
	cmd := RemovePieceFromBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setPieceKeys(pieceKeys),
	); err != nil {
		return RemovePieceFromBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemovePieceFromBoxCommand) Validate() error {
	return c.guard.Validate(ErrRemovePieceFromBoxCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c RemovePieceFromBoxCommand) TrackingNumber() string {
	return c.trackingNumber
}

// PieceKeys returns the scanned piece identifiers.
func (c RemovePieceFromBoxCommand) PieceKeys() []string {
	return c.pieceKeys
}

func (c *RemovePieceFromBoxCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}

func (c *RemovePieceFromBoxCommand) setPieceKeys(keys []string) error {
	if len(keys) == 0 {
		return ErrPieceKeysAreRequired
	}

	c.pieceKeys = keys
	return nil
}
