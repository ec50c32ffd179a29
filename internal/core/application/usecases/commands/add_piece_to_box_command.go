package commands

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrAddPieceToBoxCommandIsNotConstructed = errors.New(
		"AddPieceToBoxCommand must be created via NewAddPieceToBoxCommand constructor",
	)
	ErrPieceKeysAreRequired = errors.New("at least one piece key is required")
)

// AddPieceToBoxCommand represents a request to pack scanned pieces of a
// parcel into a box. Pieces are addressed by ID or by information label.
type AddPieceToBoxCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	boxCode        string
	pieceKeys      []string

	guard guard.ConstructorGuard
}

// NewAddPieceToBoxCommand creates a command to pack pieces into a box.
func NewAddPieceToBoxCommand(trackingNumber, boxCode string, pieceKeys []string) (AddPieceToBoxCommand, error) {
	cmd := AddPieceToBoxCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setBoxCode(boxCode),
		cmd.setPieceKeys(pieceKeys),
	); err != nil {
		return AddPieceToBoxCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPieceToBoxCommand) Validate() error {
	return c.guard.Validate(ErrAddPieceToBoxCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c AddPieceToBoxCommand) TrackingNumber() string {
	return c.trackingNumber
}

// BoxCode returns the code of the receiving box.
func (c AddPieceToBoxCommand) BoxCode() string {
	return c.boxCode
}

// PieceKeys returns the scanned piece identifiers.
func (c AddPieceToBoxCommand) PieceKeys() []string {
	return c.pieceKeys
}

func (c *AddPieceToBoxCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}

func (c *AddPieceToBoxCommand) setBoxCode(code string) error {
	if code == "" {
		return ErrBoxCodeIsRequired
	}

	c.boxCode = code
	return nil
}

func (c *AddPieceToBoxCommand) setPieceKeys(keys []string) error {
	if len(keys) == 0 {
		return ErrPieceKeysAreRequired
	}

	c.pieceKeys = keys
	return nil
}
