package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/guard"
)

var ErrUpdateTrackingStatusCommandIsNotConstructed = errors.New(
	"UpdateTrackingStatusCommand must be created via NewUpdateTrackingStatusCommand constructor",
)

// UpdateTrackingStatusCommand represents a request to move a parcel to a
// target status. For piece-level stages the scan keys name the affected
// pieces; empty keys mean every piece.
//
// Example:
//
//	cmd, err := NewUpdateTrackingStatusCommand("LX123456789US", tracking.StageReceivedAtUS, nil)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewUpdateTrackingStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update rejected: %w", err)
//	}
type UpdateTrackingStatusCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	target         tracking.Stage
	pieceKeys      []string

	guard guard.ConstructorGuard
}

// NewUpdateTrackingStatusCommand creates a command to move a parcel to the
// target status. Validates the tracking number and the stage value.
func NewUpdateTrackingStatusCommand(
	trackingNumber string,
	target tracking.Stage,
	pieceKeys []string,
) (UpdateTrackingStatusCommand, error) {
	cmd := UpdateTrackingStatusCommand{
		pieceKeys: pieceKeys,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setTarget(target),
	); err != nil {
		return UpdateTrackingStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingStatusCommandIsNotConstructed)
}

// TrackingNumber returns the carrier tracking number of the parcel.
func (c UpdateTrackingStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Target returns the requested status.
func (c UpdateTrackingStatusCommand) Target() tracking.Stage {
	return c.target
}

// PieceKeys returns the scanned piece identifiers, empty meaning all pieces.
func (c UpdateTrackingStatusCommand) PieceKeys() []string {
	return c.pieceKeys
}

func (c *UpdateTrackingStatusCommand) setTrackingNumber(number string) error {
	if number == "" {
		return ErrTrackingNumberIsEmpty
	}

	c.trackingNumber = number
	return nil
}

func (c *UpdateTrackingStatusCommand) setTarget(target tracking.Stage) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
