package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/box"
	"parceltrack/internal/core/domain/model/kernel"
)

// BoxRepository defines the persistence contract for box aggregates.
type BoxRepository interface {
	// Add persists a new box aggregate to storage.
	// Fails with errs.ErrObjectAlreadyExists when the code is taken.
	Add(ctx context.Context, aggregate *box.Box) error

	// Update persists changes to an existing box aggregate.
	Update(ctx context.Context, aggregate *box.Box) error

	// Delete removes a box from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a box aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*box.Box, error)

	// GetByCode retrieves a box by its human-assigned code.
	GetByCode(ctx context.Context, code string) (*box.Box, error)

	// GetAllByShipment retrieves every box joined to the shipment.
	GetAllByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*box.Box, error)
}
