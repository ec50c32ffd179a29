package shipmentrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("shipment", aggregate.Code(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Save, not Updates: uncommitting must write committed_at back to NULL
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a shipment from storage.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a shipment by its alphanumeric code.
func (r *GormShipmentRepository) GetByCode(ctx context.Context, code string) (*shipment.Shipment, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", code)
		}
		return nil, err
	}

	return toDomain(dto)
}
