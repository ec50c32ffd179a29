package box

import (
	"errors"
	"fmt"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrBoxIsNotConstructed is returned when using an improperly initialized Box.
	ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox or RestoreBox")

	// ErrBoxIsEmpty indicates an attempt to put a box with neither pieces nor
	// custom items into a shipment.
	ErrBoxIsEmpty = errors.New("box is empty")

	// ErrBoxWasInShipment indicates that the box already belongs to a
	// different shipment.
	ErrBoxWasInShipment = errors.New("box was already in a shipment")

	// ErrBoxIsContainingReturnedItem indicates that a piece in the box belongs
	// to an item frozen by a return request.
	ErrBoxIsContainingReturnedItem = errors.New("box is containing a returned item")
)

// ContainsReturnedItemError lists the tracking numbers that block a shipment
// assignment because their items are held for return.
type ContainsReturnedItemError struct {
	BoxCode         string
	TrackingNumbers []string
}

func (e *ContainsReturnedItemError) Error() string {
	return fmt.Sprintf("%s: box %s holds %s",
		ErrBoxIsContainingReturnedItem, e.BoxCode, strings.Join(e.TrackingNumbers, ", "))
}

func (e *ContainsReturnedItemError) Unwrap() error {
	return ErrBoxIsContainingReturnedItem
}

// CustomItem is a non-tracked article packed into a box alongside pieces,
// e.g. filler goods bought on behalf of a customer.
type CustomItem struct {
	Name     string
	Quantity int
}

// Box is a physical transit container aggregating pieces of tracking items
// plus custom items. A box can belong to at most one shipment and optionally
// to one lot for reporting.
//
// Membership invariants are enforced at assignment time: a box joining a
// shipment must be non-empty, must not already sit in another shipment, and
// must not contain any piece of a held item. No stage timestamps are stamped
// by assignment; stamping happens only at shipment commit.
type Box struct {
	id kernel.UUID
	// code is the warehouse label on the physical box
	code string
	// weightKg is the scale weight recorded when the box was closed
	weightKg float64
	// shipmentID references the shipment the box was loaded into, nil while loose
	shipmentID *kernel.UUID
	// lotID references the reporting lot, nil when unassigned
	lotID *kernel.UUID

	customItems []CustomItem

	guard kernel.ConstructorGuard
}

// NewBox creates a loose box with no shipment or lot assignment.
func NewBox(id kernel.UUID, code string) (*Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	return &Box{
		id:    id,
		code:  code,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// RestoreBox reconstructs a box from persistent storage.
func RestoreBox(
	id kernel.UUID,
	code string,
	weightKg float64,
	shipmentID, lotID *kernel.UUID,
	customItems []CustomItem,
) (*Box, error) {
	b, err := NewBox(id, code)
	if err != nil {
		return nil, err
	}

	b.weightKg = weightKg
	b.shipmentID = shipmentID
	b.lotID = lotID
	b.customItems = customItems
	return b, nil
}

// Validate ensures the box was created through a constructor.
func (b *Box) Validate() error {
	if b == nil {
		return ErrBoxIsNotConstructed
	}
	return b.guard.Validate(ErrBoxIsNotConstructed)
}

// IsEqual compares boxes by identity.
func (b *Box) IsEqual(other *Box) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the box identity.
func (b *Box) ID() kernel.UUID { return b.id }

// Code returns the warehouse label.
func (b *Box) Code() string { return b.code }

// WeightKg returns the recorded scale weight.
func (b *Box) WeightKg() float64 { return b.weightKg }

// ShipmentID returns the shipment holding the box, nil while loose.
func (b *Box) ShipmentID() *kernel.UUID {
	if b.shipmentID == nil {
		return nil
	}
	id := *b.shipmentID
	return &id
}

// LotID returns the reporting lot, nil when unassigned.
func (b *Box) LotID() *kernel.UUID {
	if b.lotID == nil {
		return nil
	}
	id := *b.lotID
	return &id
}

// CustomItems returns the non-tracked articles packed in the box.
func (b *Box) CustomItems() []CustomItem {
	items := make([]CustomItem, len(b.customItems))
	copy(items, b.customItems)
	return items
}

// SetWeight records the scale weight of the closed box.
func (b *Box) SetWeight(kg float64) error {
	if kg < 0 {
		return errs.NewValueIsInvalidError("weightKg")
	}
	b.weightKg = kg
	return nil
}

// AddCustomItem packs a non-tracked article into the box.
func (b *Box) AddCustomItem(name string, quantity int) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}
	b.customItems = append(b.customItems, CustomItem{Name: name, Quantity: quantity})
	return nil
}

// AssignToShipment puts the box into a shipment. owners are the tracking
// items that have pieces sitting in this box; the caller loads them so the
// box can evaluate its membership invariants:
//
//   - the box must hold at least one piece or custom item
//   - the box must not already belong to a different shipment
//   - no piece may belong to an item held for return
//
// Assignment sets the reference only; stage stamping happens at commit.
func (b *Box) AssignToShipment(shipmentID kernel.UUID, owners []*tracking.TrackingItem) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	if b.shipmentID != nil && !b.shipmentID.IsEqual(shipmentID) {
		return fmt.Errorf("%w: %s", ErrBoxWasInShipment, b.code)
	}

	pieceCount := 0
	var returned []string
	for _, owner := range owners {
		pieceCount += len(owner.PieceKeysInBox(b.id))
		if owner.ReturnRequestAt() != nil {
			returned = append(returned, owner.TrackingNumber())
		}
	}

	if pieceCount == 0 && len(b.customItems) == 0 {
		return fmt.Errorf("%w: %s", ErrBoxIsEmpty, b.code)
	}
	if len(returned) > 0 {
		return &ContainsReturnedItemError{BoxCode: b.code, TrackingNumbers: returned}
	}

	b.shipmentID = &shipmentID
	return nil
}

// RemoveFromShipment clears the shipment reference. Reverting piece stamps
// that a prior commit applied is the caller's cascade, not the box's concern.
func (b *Box) RemoveFromShipment() {
	b.shipmentID = nil
}

// AssignToLot places the box into a reporting lot.
func (b *Box) AssignToLot(lotID kernel.UUID) error {
	if err := lotID.Validate(); err != nil {
		return err
	}
	b.lotID = &lotID
	return nil
}

// RemoveFromLot clears the lot reference.
func (b *Box) RemoveFromLot() {
	b.lotID = nil
}
