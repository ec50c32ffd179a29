package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
)

// PackBoxRepository defines the persistence contract for pack box aggregates.
type PackBoxRepository interface {
	// Add persists a new pack box aggregate to storage.
	// Fails with errs.ErrObjectAlreadyExists when the code is taken.
	Add(ctx context.Context, aggregate *delivery.PackBox) error

	// Update persists changes to an existing pack box aggregate.
	Update(ctx context.Context, aggregate *delivery.PackBox) error

	// Delete removes a pack box from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a pack box aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.PackBox, error)

	// GetByCode retrieves a pack box by its human-assigned code.
	GetByCode(ctx context.Context, code string) (*delivery.PackBox, error)

	// GetAllByDelivery retrieves every pack box joined to the delivery.
	GetAllByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.PackBox, error)
}

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// Fails with errs.ErrObjectAlreadyExists when the code is taken.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Delete removes a delivery from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByCode retrieves a delivery by its human-assigned code.
	GetByCode(ctx context.Context, code string) (*delivery.Delivery, error)
}
