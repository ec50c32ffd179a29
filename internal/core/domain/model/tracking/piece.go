package tracking

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrPieceIsNotConstructed is returned when using an improperly initialized Piece.
	ErrPieceIsNotConstructed = errors.New("Piece must be created via NewPiece or RestorePiece")

	// ErrPieceAlreadyBoxed indicates an attempt to delete a piece that has
	// already been placed in a box. Pieces may only be removed before boxing.
	ErrPieceAlreadyBoxed = errors.New("piece cannot be deleted after boxing")
)

// Piece is one physically movable sub-unit of a TrackingItem. Multi-piece
// parcels travel as independent pieces that can straddle two pipeline stages;
// the parent item advances only when all of its pieces have.
//
// A piece carries its own boxed/flyingBack/receivedAtVN timestamps plus a
// non-owning reference to the box it currently sits in.
type Piece struct {
	// id uniquely identifies the piece
	id kernel.UUID
	// information is the human-entered label distinguishing the piece
	// ("carton 1 of 2", weight notes, etc.); callers may address pieces by it
	information string
	// boxID references the transit box holding this piece, nil when unboxed
	boxID *kernel.UUID

	boxedAt        *time.Time
	flyingBackAt   *time.Time
	receivedAtVNAt *time.Time

	guard kernel.ConstructorGuard
}

// NewPiece creates an unboxed piece with no stage stamps.
func NewPiece(id kernel.UUID, information string) (*Piece, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if information == "" {
		return nil, errs.NewValueIsRequiredError("information")
	}

	return &Piece{
		id:          id,
		information: information,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestorePiece reconstructs a piece from persistent storage, including its
// box assignment and stage stamps.
func RestorePiece(
	id kernel.UUID,
	information string,
	boxID *kernel.UUID,
	boxedAt, flyingBackAt, receivedAtVNAt *time.Time,
) (*Piece, error) {
	piece, err := NewPiece(id, information)
	if err != nil {
		return nil, err
	}

	piece.boxID = boxID
	piece.boxedAt = boxedAt
	piece.flyingBackAt = flyingBackAt
	piece.receivedAtVNAt = receivedAtVNAt
	return piece, nil
}

// Validate ensures the piece was created through a constructor.
func (p *Piece) Validate() error {
	if p == nil {
		return ErrPieceIsNotConstructed
	}
	return p.guard.Validate(ErrPieceIsNotConstructed)
}

// ID returns the piece identity.
func (p *Piece) ID() kernel.UUID {
	return p.id
}

// Information returns the human-entered piece label.
func (p *Piece) Information() string {
	return p.information
}

// BoxID returns the box currently holding the piece, nil when unboxed.
func (p *Piece) BoxID() *kernel.UUID {
	return copyUUIDPtr(p.boxID)
}

// BoxedAt returns the boxed stamp, nil when the piece has not been boxed.
func (p *Piece) BoxedAt() *time.Time {
	return copyTimePtr(p.boxedAt)
}

// FlyingBackAt returns the flyingBack stamp set by a shipment commit.
func (p *Piece) FlyingBackAt() *time.Time {
	return copyTimePtr(p.flyingBackAt)
}

// ReceivedAtVNAt returns the VN arrival stamp.
func (p *Piece) ReceivedAtVNAt() *time.Time {
	return copyTimePtr(p.receivedAtVNAt)
}

// AssignToBox records the piece as sitting in the given box.
func (p *Piece) AssignToBox(boxID kernel.UUID) error {
	if err := boxID.Validate(); err != nil {
		return err
	}
	p.boxID = &boxID
	return nil
}

// RemoveFromBox clears the box reference. The boxed stamp is reverted
// separately through the parent item's piece rollback.
func (p *Piece) RemoveFromBox() {
	p.boxID = nil
}

// Matches reports whether key addresses this piece, either by its ID string
// or by its information label.
func (p *Piece) Matches(key string) bool {
	return key == p.id.String() || (p.information != "" && key == p.information)
}

// StageTime returns the piece's stamp for a piece-level stage.
func (p *Piece) StageTime(stage Stage) *time.Time {
	switch stage {
	case StageBoxed:
		return copyTimePtr(p.boxedAt)
	case StageFlyingBack:
		return copyTimePtr(p.flyingBackAt)
	case StageReceivedAtVN:
		return copyTimePtr(p.receivedAtVNAt)
	default:
		return nil
	}
}

// stamp sets the piece's timestamp for a piece-level stage.
func (p *Piece) stamp(stage Stage, at time.Time) error {
	switch stage {
	case StageBoxed:
		p.boxedAt = &at
	case StageFlyingBack:
		p.flyingBackAt = &at
	case StageReceivedAtVN:
		p.receivedAtVNAt = &at
	default:
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%s is not a piece-level stage", stage))
	}
	return nil
}

// clear removes the piece's timestamp for a piece-level stage.
func (p *Piece) clear(stage Stage) {
	switch stage {
	case StageBoxed:
		p.boxedAt = nil
	case StageFlyingBack:
		p.flyingBackAt = nil
	case StageReceivedAtVN:
		p.receivedAtVNAt = nil
	}
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUUIDPtr(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
