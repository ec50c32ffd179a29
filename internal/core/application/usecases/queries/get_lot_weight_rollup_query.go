package queries

import (
	"errors"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetLotWeightRollupQueryIsNotConstructed = errors.New(
		"GetLotWeightRollupQuery must be created via NewGetLotWeightRollupQuery constructor",
	)

	ErrLotLabelIsRequired = errors.New("lot label is required")
)

// GetLotWeightRollupQuery aggregates box weights per lot under a label,
// ordered by lot index.
type GetLotWeightRollupQuery struct { //nolint:recvcheck //using for validation
	label string

	guard guard.ConstructorGuard
}

// NewGetLotWeightRollupQuery creates a weight rollup query.
func NewGetLotWeightRollupQuery(label string) (GetLotWeightRollupQuery, error) {
	if label == "" {
		return GetLotWeightRollupQuery{}, ErrLotLabelIsRequired
	}

	return GetLotWeightRollupQuery{
		label: label,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLotWeightRollupQuery) Validate() error {
	return q.guard.Validate(ErrGetLotWeightRollupQueryIsNotConstructed)
}

// Label returns the lot label to aggregate.
func (q GetLotWeightRollupQuery) Label() string {
	return q.label
}

// LotWeightEntry is the rollup for one lot.
type LotWeightEntry struct {
	Label         string
	Index         int
	BoxCount      int
	TotalWeightKg float64
}
