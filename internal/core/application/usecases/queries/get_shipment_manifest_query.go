package queries

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/guard"
)

var (
	ErrGetShipmentManifestQueryIsNotConstructed = errors.New(
		"GetShipmentManifestQuery must be created via NewGetShipmentManifestQuery constructor",
	)

	ErrShipmentCodeIsRequired = errors.New("shipment code is required")
)

// GetShipmentManifestQuery builds the manifest of a shipment: its boxes with
// piece counts and weights, plus the shipment totals.
type GetShipmentManifestQuery struct { //nolint:recvcheck //using for validation
	shipmentCode string

	guard guard.ConstructorGuard
}

// NewGetShipmentManifestQuery creates a manifest query.
func NewGetShipmentManifestQuery(shipmentCode string) (GetShipmentManifestQuery, error) {
	if shipmentCode == "" {
		return GetShipmentManifestQuery{}, ErrShipmentCodeIsRequired
	}

	return GetShipmentManifestQuery{
		shipmentCode: shipmentCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentManifestQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentManifestQueryIsNotConstructed)
}

// ShipmentCode returns the code of the shipment to list.
func (q GetShipmentManifestQuery) ShipmentCode() string {
	return q.shipmentCode
}

// ShipmentManifestResponse is the manifest read model.
type ShipmentManifestResponse struct {
	ShipmentCode  string
	CommittedAt   *time.Time
	Boxes         []ManifestBoxEntry
	TotalPieces   int
	TotalWeightKg float64
}

// ManifestBoxEntry is one box line of the manifest.
type ManifestBoxEntry struct {
	BoxCode    string
	WeightKg   float64
	PieceCount int
}
