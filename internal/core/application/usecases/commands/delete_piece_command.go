package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrDeletePieceCommandIsNotConstructed = errors.New(
	"DeletePieceCommand must be created via NewDeletePieceCommand constructor",
)

// DeletePieceCommand represents a request to remove a piece from a parcel,
// e.g. after a mistaken split.
type DeletePieceCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	pieceID        kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeletePieceCommand creates a command to remove a piece from a parcel.
func NewDeletePieceCommand(trackingNumber string, pieceID kernel.UUID) (DeletePieceCommand, error) {
	cmd := DeletePieceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setPieceID(pieceID),
	); err != nil {
		return DeletePieceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeletePieceCommand) Validate() error {
	return c.guard.Validate(ErrDeletePieceCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c DeletePieceCommand) TrackingNumber() string {
	return c.trackingNumber
}

// PieceID returns the identifier of the piece to remove.
func (c DeletePieceCommand) PieceID() kernel.UUID {
	return c.pieceID
}

func (c *DeletePieceCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}

func (c *DeletePieceCommand) setPieceID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.pieceID = id
	return nil
}
