// Package shipment contains the Shipment aggregate: a committed batch of
// boxes flown from the US warehouse to the VN warehouse.
package shipment

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when using an improperly initialized Shipment.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

	// ErrContainerIsEmpty indicates a commit attempt on a container holding no
	// pieces across all of its boxes.
	ErrContainerIsEmpty = errors.New("container is empty")

	// ErrAlreadyCommitted indicates a mutation that is only legal while the
	// container is open: committing twice, or deleting after commit.
	ErrAlreadyCommitted = errors.New("container is already committed")
)

// codePattern restricts shipment codes to the alphanumeric labels painted on
// air waybills.
var codePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Shipment aggregates boxes for one international transit leg.
//
// A shipment is Open while committedAt is nil: boxes may be freely added and
// removed. Committing freezes membership and cascades flyingBack stamps to
// every contained piece in a single transaction. Deleting is only legal while
// Open and detaches the boxes rather than deleting them.
type Shipment struct {
	id kernel.UUID
	// code is the unique alphanumeric flight/batch label
	code string
	// committedAt marks the commit event, nil while the shipment is open
	committedAt *time.Time

	guard kernel.ConstructorGuard
}

// NewShipment creates an open shipment with the given unique code.
func NewShipment(id kernel.UUID, code string) (*Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if !codePattern.MatchString(code) {
		return nil, errs.NewValueIsInvalidErrorWithCause("code",
			fmt.Errorf("%q is not alphanumeric", code))
	}

	return &Shipment{
		id:    id,
		code:  code,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// RestoreShipment reconstructs a shipment from persistent storage.
func RestoreShipment(id kernel.UUID, code string, committedAt *time.Time) (*Shipment, error) {
	s, err := NewShipment(id, code)
	if err != nil {
		return nil, err
	}
	s.committedAt = committedAt
	return s, nil
}

// Validate ensures the shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID returns the shipment identity.
func (s *Shipment) ID() kernel.UUID { return s.id }

// Code returns the unique flight/batch label.
func (s *Shipment) Code() string { return s.code }

// CommittedAt returns the commit stamp, nil while the shipment is open.
func (s *Shipment) CommittedAt() *time.Time {
	if s.committedAt == nil {
		return nil
	}
	at := *s.committedAt
	return &at
}

// IsCommitted reports whether membership is frozen.
func (s *Shipment) IsCommitted() bool {
	return s.committedAt != nil
}

// Commit freezes the shipment at the given time. pieceCount is the number of
// pieces reachable through the shipment's boxes; a shipment with zero pieces
// cannot be committed.
func (s *Shipment) Commit(now time.Time, pieceCount int) error {
	if s.committedAt != nil {
		return fmt.Errorf("%w: shipment %s", ErrAlreadyCommitted, s.code)
	}
	if pieceCount == 0 {
		return fmt.Errorf("%w: shipment %s", ErrContainerIsEmpty, s.code)
	}
	s.committedAt = &now
	return nil
}

// Uncommit reopens the shipment, used by the reverse cascade when boxes are
// pulled back out.
func (s *Shipment) Uncommit() {
	s.committedAt = nil
}

// EnsureDeletable rejects deletion of a committed shipment; delete is a
// terminal operation reachable only from the open state.
func (s *Shipment) EnsureDeletable() error {
	if s.committedAt != nil {
		return fmt.Errorf("%w: shipment %s", ErrAlreadyCommitted, s.code)
	}
	return nil
}
