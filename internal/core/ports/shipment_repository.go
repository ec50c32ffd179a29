package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/lot"
	"parceltrack/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// Fails with errs.ErrObjectAlreadyExists when the code is taken.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Delete removes a shipment from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByCode retrieves a shipment by its alphanumeric code.
	GetByCode(ctx context.Context, code string) (*shipment.Shipment, error)
}

// LotRepository defines the persistence contract for lot aggregates.
type LotRepository interface {
	// Add persists a new lot aggregate to storage.
	Add(ctx context.Context, aggregate *lot.Lot) error

	// Update persists changes to an existing lot aggregate.
	Update(ctx context.Context, aggregate *lot.Lot) error

	// Delete removes a lot from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a lot aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*lot.Lot, error)

	// GetAllByLabel retrieves every lot sharing a label ordered by index.
	GetAllByLabel(ctx context.Context, label string) ([]*lot.Lot, error)
}
