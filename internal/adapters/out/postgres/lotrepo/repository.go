package lotrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/lot"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLotRepository implements LotRepository using GORM.
type GormLotRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLotRepository creates a new GORM lot repository.
func NewGormLotRepository(db *gorm.DB, tracker aggregateTracker) *GormLotRepository {
	return &GormLotRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new lot to the database.
func (r *GormLotRepository) Add(ctx context.Context, aggregate *lot.Lot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing lot to the database.
func (r *GormLotRepository) Update(ctx context.Context, aggregate *lot.Lot) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
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

// Delete removes a lot from storage.
func (r *GormLotRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&LotDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a lot by ID.
func (r *GormLotRepository) Get(ctx context.Context, id kernel.UUID) (*lot.Lot, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LotDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("lot", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByLabel retrieves every lot sharing a label ordered by index.
func (r *GormLotRepository) GetAllByLabel(ctx context.Context, label string) ([]*lot.Lot, error) {
	if label == "" {
		return nil, errs.NewValueIsRequiredError("label")
	}

	var dtos []LotDTO
	if err := r.db.WithContext(ctx).Order("idx").Find(&dtos, "label = ?", label).Error; err != nil {
		return nil, err
	}

	lots := make([]*lot.Lot, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}

	return lots, nil
}
