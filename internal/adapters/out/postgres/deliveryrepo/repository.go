package deliveryrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPackBoxRepository implements PackBoxRepository using GORM.
type GormPackBoxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormPackBoxRepository creates a new GORM pack box repository.
func NewGormPackBoxRepository(db *gorm.DB, tracker aggregateTracker) *GormPackBoxRepository {
	return &GormPackBoxRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pack box to the database.
func (r *GormPackBoxRepository) Add(ctx context.Context, aggregate *delivery.PackBox) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := packBoxFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("pack box", aggregate.Code(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing pack box to the database.
func (r *GormPackBoxRepository) Update(ctx context.Context, aggregate *delivery.PackBox) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := packBoxFromDomain(aggregate)
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

// Delete removes a pack box from storage.
func (r *GormPackBoxRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&PackBoxDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a pack box by ID.
func (r *GormPackBoxRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.PackBox, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackBoxDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pack box", id.String())
		}
		return nil, err
	}

	return packBoxToDomain(dto)
}

// GetByCode retrieves a pack box by its code.
func (r *GormPackBoxRepository) GetByCode(ctx context.Context, code string) (*delivery.PackBox, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto PackBoxDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pack box", code)
		}
		return nil, err
	}

	return packBoxToDomain(dto)
}

// GetAllByDelivery retrieves every pack box joined to the delivery.
func (r *GormPackBoxRepository) GetAllByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.PackBox, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackBoxDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "delivery_id = ?", deliveryID.Bytes()).Error; err != nil {
		return nil, err
	}

	packBoxes := make([]*delivery.PackBox, 0, len(dtos))
	for _, dto := range dtos {
		p, err := packBoxToDomain(dto)
		if err != nil {
			return nil, err
		}
		packBoxes = append(packBoxes, p)
	}

	return packBoxes, nil
}

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("delivery", aggregate.Code(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(aggregate)
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

// Delete removes a delivery from storage.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&DeliveryDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return deliveryToDomain(dto)
}

// GetByCode retrieves a delivery by its code.
func (r *GormDeliveryRepository) GetByCode(ctx context.Context, code string) (*delivery.Delivery, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", code)
		}
		return nil, err
	}

	return deliveryToDomain(dto)
}
