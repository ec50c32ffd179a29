// Package lot contains the Lot aggregate: a labeled grouping of boxes used
// for weight and report rollups. Lots carry no commit semantics.
package lot

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrLotIsNotConstructed is returned when using an improperly initialized Lot.
var ErrLotIsNotConstructed = errors.New("Lot must be created via NewLot or RestoreLot")

// Lot groups boxes under a human label and running index for reporting.
type Lot struct {
	id kernel.UUID
	// label is the human grouping name, e.g. an intake batch
	label string
	// index distinguishes lots sharing a label
	index int

	guard kernel.ConstructorGuard
}

// NewLot creates a lot with the given label and index.
func NewLot(id kernel.UUID, label string, index int) (*Lot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if label == "" {
		return nil, errs.NewValueIsRequiredError("label")
	}
	if index < 0 {
		return nil, errs.NewValueIsInvalidError("index")
	}

	return &Lot{
		id:    id,
		label: label,
		index: index,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// RestoreLot reconstructs a lot from persistent storage.
func RestoreLot(id kernel.UUID, label string, index int) (*Lot, error) {
	return NewLot(id, label, index)
}

// Validate ensures the lot was created through a constructor.
func (l *Lot) Validate() error {
	if l == nil {
		return ErrLotIsNotConstructed
	}
	return l.guard.Validate(ErrLotIsNotConstructed)
}

// ID returns the lot identity.
func (l *Lot) ID() kernel.UUID { return l.id }

// Label returns the human grouping name.
func (l *Lot) Label() string { return l.label }

// Index returns the running index within the label.
func (l *Lot) Index() int { return l.index }
