package boxrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/box"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBoxRepository implements BoxRepository using GORM.
type GormBoxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBoxRepository creates a new GORM box repository.
func NewGormBoxRepository(db *gorm.DB, tracker aggregateTracker) *GormBoxRepository {
	return &GormBoxRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new box to the database.
func (r *GormBoxRepository) Add(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("box", aggregate.Code(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing box to the database, replacing its custom item rows.
func (r *GormBoxRepository) Update(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).
		Where("box_id = ?", dto.ID).
		Delete(&CustomItemDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a box from storage.
func (r *GormBoxRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&BoxDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a box by ID.
func (r *GormBoxRepository) Get(ctx context.Context, id kernel.UUID) (*box.Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BoxDTO
	if err := r.db.WithContext(ctx).Preload("CustomItems").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("box", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a box by its warehouse code.
func (r *GormBoxRepository) GetByCode(ctx context.Context, code string) (*box.Box, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto BoxDTO
	if err := r.db.WithContext(ctx).Preload("CustomItems").First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("box", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByShipment retrieves every box joined to the shipment.
func (r *GormBoxRepository) GetAllByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*box.Box, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BoxDTO
	if err := r.db.WithContext(ctx).
		Preload("CustomItems").
		Find(&dtos, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		return nil, err
	}

	boxes := make([]*box.Box, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	return boxes, nil
}
