// Package delivery contains the VN-side container aggregates: PackBox groups
// tracking items for final customer delivery, Delivery groups pack boxes and
// carries the commit event that stamps deliveredAt on every contained item.
//
// The pair mirrors Box/Shipment structurally but is a separate state machine:
// its commit stamps the item-level delivery time directly instead of running
// through piece aggregation.
package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrPackBoxIsNotConstructed is returned when using an improperly initialized PackBox.
	ErrPackBoxIsNotConstructed = errors.New("PackBox must be created via NewPackBox or RestorePackBox")

	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery")

	// ErrPackBoxIsEmpty indicates an attempt to put a pack box with no items
	// into a delivery.
	ErrPackBoxIsEmpty = errors.New("pack box is empty")

	// ErrPackBoxWasInDelivery indicates that the pack box already belongs to a
	// different delivery.
	ErrPackBoxWasInDelivery = errors.New("pack box was already in a delivery")

	// ErrPackBoxIsContainingReturnedItem indicates that an item in the pack
	// box is frozen by a return request.
	ErrPackBoxIsContainingReturnedItem = errors.New("pack box is containing a returned item")

	// ErrContainerIsEmpty indicates a commit attempt on a delivery holding no
	// items across all of its pack boxes.
	ErrContainerIsEmpty = errors.New("container is empty")

	// ErrAlreadyCommitted indicates a mutation that is only legal while the
	// delivery is open.
	ErrAlreadyCommitted = errors.New("container is already committed")
)

// ContainsReturnedItemError lists the tracking numbers blocking a delivery
// assignment because their items are held for return.
type ContainsReturnedItemError struct {
	PackBoxCode     string
	TrackingNumbers []string
}

func (e *ContainsReturnedItemError) Error() string {
	return fmt.Sprintf("%s: pack box %s holds %s",
		ErrPackBoxIsContainingReturnedItem, e.PackBoxCode, strings.Join(e.TrackingNumbers, ", "))
}

func (e *ContainsReturnedItemError) Unwrap() error {
	return ErrPackBoxIsContainingReturnedItem
}

// PackBox groups tracking items for one customer delivery run.
type PackBox struct {
	id kernel.UUID
	// code is the VN warehouse label on the physical pack box
	code string
	// deliveryID references the delivery the pack box was loaded into, nil while loose
	deliveryID *kernel.UUID

	guard kernel.ConstructorGuard
}

// NewPackBox creates a loose pack box.
func NewPackBox(id kernel.UUID, code string) (*PackBox, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return &PackBox{
		id:    id,
		code:  code,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// RestorePackBox reconstructs a pack box from persistent storage.
func RestorePackBox(id kernel.UUID, code string, deliveryID *kernel.UUID) (*PackBox, error) {
	p, err := NewPackBox(id, code)
	if err != nil {
		return nil, err
	}
	p.deliveryID = deliveryID
	return p, nil
}

// Validate ensures the pack box was created through a constructor.
func (p *PackBox) Validate() error {
	if p == nil {
		return ErrPackBoxIsNotConstructed
	}
	return p.guard.Validate(ErrPackBoxIsNotConstructed)
}

// ID returns the pack box identity.
func (p *PackBox) ID() kernel.UUID { return p.id }

// Code returns the VN warehouse label.
func (p *PackBox) Code() string { return p.code }

// DeliveryID returns the delivery holding the pack box, nil while loose.
func (p *PackBox) DeliveryID() *kernel.UUID {
	if p.deliveryID == nil {
		return nil
	}
	id := *p.deliveryID
	return &id
}

// AssignToDelivery puts the pack box into a delivery. contents are the
// tracking items sitting in this pack box; the same membership invariants
// apply as for boxes joining a shipment.
func (p *PackBox) AssignToDelivery(deliveryID kernel.UUID, contents []*tracking.TrackingItem) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	if p.deliveryID != nil && !p.deliveryID.IsEqual(deliveryID) {
		return fmt.Errorf("%w: %s", ErrPackBoxWasInDelivery, p.code)
	}

	if len(contents) == 0 {
		return fmt.Errorf("%w: %s", ErrPackBoxIsEmpty, p.code)
	}

	var returned []string
	for _, item := range contents {
		if item.ReturnRequestAt() != nil {
			returned = append(returned, item.TrackingNumber())
		}
	}
	if len(returned) > 0 {
		return &ContainsReturnedItemError{PackBoxCode: p.code, TrackingNumbers: returned}
	}

	p.deliveryID = &deliveryID
	return nil
}

// RemoveFromDelivery clears the delivery reference.
func (p *PackBox) RemoveFromDelivery() {
	p.deliveryID = nil
}

// Delivery aggregates pack boxes for one customer delivery run. committedAt
// marks the run as executed, cascading deliveredAt stamps to all contained
// items; the commit/uncommit symmetry matches Shipment.
type Delivery struct {
	id kernel.UUID
	// code is the delivery run label
	code string
	// committedAt marks the executed run, nil while open
	committedAt *time.Time

	guard kernel.ConstructorGuard
}

// NewDelivery creates an open delivery run.
func NewDelivery(id kernel.UUID, code string) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return &Delivery{
		id:    id,
		code:  code,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistent storage.
func RestoreDelivery(id kernel.UUID, code string, committedAt *time.Time) (*Delivery, error) {
	d, err := NewDelivery(id, code)
	if err != nil {
		return nil, err
	}
	d.committedAt = committedAt
	return d, nil
}

// Validate ensures the delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the delivery identity.
func (d *Delivery) ID() kernel.UUID { return d.id }

// Code returns the delivery run label.
func (d *Delivery) Code() string { return d.code }

// CommittedAt returns the commit stamp, nil while the delivery is open.
func (d *Delivery) CommittedAt() *time.Time {
	if d.committedAt == nil {
		return nil
	}
	at := *d.committedAt
	return &at
}

// IsCommitted reports whether the run was executed.
func (d *Delivery) IsCommitted() bool {
	return d.committedAt != nil
}

// Commit marks the run as executed. itemCount is the number of items
// reachable through the delivery's pack boxes; an empty delivery cannot be
// committed.
func (d *Delivery) Commit(now time.Time, itemCount int) error {
	if d.committedAt != nil {
		return fmt.Errorf("%w: delivery %s", ErrAlreadyCommitted, d.code)
	}
	if itemCount == 0 {
		return fmt.Errorf("%w: delivery %s", ErrContainerIsEmpty, d.code)
	}
	d.committedAt = &now
	return nil
}

// Uncommit reopens the delivery during a reverse cascade.
func (d *Delivery) Uncommit() {
	d.committedAt = nil
}

// EnsureDeletable rejects deletion of a committed delivery.
func (d *Delivery) EnsureDeletable() error {
	if d.committedAt != nil {
		return fmt.Errorf("%w: delivery %s", ErrAlreadyCommitted, d.code)
	}
	return nil
}
