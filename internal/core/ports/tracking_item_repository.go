package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
)

// TrackingItemRepository defines the persistence contract for tracking item
// aggregates. Items are always loaded and stored together with their pieces.
type TrackingItemRepository interface {
	// Add persists a new tracking item aggregate to storage.
	// Fails with errs.ErrObjectAlreadyExists when the tracking number is taken.
	Add(ctx context.Context, aggregate *tracking.TrackingItem) error

	// Update persists changes to an existing tracking item aggregate.
	Update(ctx context.Context, aggregate *tracking.TrackingItem) error

	// Delete removes a tracking item and its pieces from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a tracking item aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*tracking.TrackingItem, error)

	// GetByTrackingNumber retrieves a tracking item by its carrier tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*tracking.TrackingItem, error)

	// GetAllByBox retrieves every tracking item owning at least one piece in the box.
	GetAllByBox(ctx context.Context, boxID kernel.UUID) ([]*tracking.TrackingItem, error)

	// GetAllByPackBox retrieves every tracking item assigned to the pack box.
	GetAllByPackBox(ctx context.Context, packBoxID kernel.UUID) ([]*tracking.TrackingItem, error)

	// GetAllExpired retrieves items whose retention deadline has passed.
	GetAllExpired(ctx context.Context, now time.Time, limit int) ([]*tracking.TrackingItem, error)
}
