package trackingrepo

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingItemRepository implements TrackingItemRepository using GORM.
type GormTrackingItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingItemRepository creates a new GORM tracking item repository.
func NewGormTrackingItemRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingItemRepository {
	return &GormTrackingItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracking item and its pieces to the database.
func (r *GormTrackingItemRepository) Add(ctx context.Context, aggregate *tracking.TrackingItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("tracking item", aggregate.TrackingNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing tracking item to the database, replacing its piece
// rows so splits and deletions are reflected. A write that would introduce a
// return hold is re-checked against the stored row, so the hold-after-box
// rule survives every write path, not just RequestReturn.
func (r *GormTrackingItemRepository) Update(ctx context.Context, aggregate *tracking.TrackingItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	if dto.ReturnRequestAt != nil {
		if err := r.ensureHoldAllowed(ctx, dto); err != nil {
			return err
		}
	}

	// Save alone will not remove rows for deleted pieces
	if err := r.db.WithContext(ctx).
		Where("tracking_item_id = ?", dto.ID).
		Delete(&PieceDTO{}).Error; err != nil {
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

// ensureHoldAllowed rejects a write introducing a return hold on an item
// whose stored row already carries a boxed-or-later stamp. A hold already
// present in the stored row passes: it is not new, only carried along.
func (r *GormTrackingItemRepository) ensureHoldAllowed(ctx context.Context, dto TrackingItemDTO) error {
	var stored TrackingItemDTO
	if err := r.db.WithContext(ctx).
		Select("return_request_at", "boxed_at", "flying_back_at", "received_at_vn_at").
		First(&stored, "id = ?", dto.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}

	if stored.ReturnRequestAt != nil {
		return nil
	}

	status := tracking.StageNew
	for _, stamp := range []struct {
		stage tracking.Stage
		at    *time.Time
	}{
		{tracking.StageBoxed, stored.BoxedAt},
		{tracking.StageFlyingBack, stored.FlyingBackAt},
		{tracking.StageReceivedAtVN, stored.ReceivedAtVNAt},
	} {
		if stamp.at != nil && status.Before(stamp.stage) {
			status = stamp.stage
		}
	}

	if status.AtLeast(tracking.StageBoxed) {
		return &tracking.CannotHoldTrackingError{TrackingNumber: dto.TrackingNumber, Status: status}
	}
	return nil
}

// Delete removes a tracking item; pieces go with it via the cascade constraint.
func (r *GormTrackingItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&TrackingItemDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a tracking item by ID.
func (r *GormTrackingItemRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.TrackingItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingItemDTO
	if err := r.db.WithContext(ctx).Preload("Pieces").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a tracking item by its carrier tracking number.
func (r *GormTrackingItemRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*tracking.TrackingItem, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	var dto TrackingItemDTO
	if err := r.db.WithContext(ctx).Preload("Pieces").First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking item", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByBox retrieves every tracking item owning at least one piece in the box.
func (r *GormTrackingItemRepository) GetAllByBox(ctx context.Context, boxID kernel.UUID) ([]*tracking.TrackingItem, error) {
	if err := boxID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingItemDTO
	if err := r.db.WithContext(ctx).
		Preload("Pieces").
		Where("id IN (?)", r.db.Model(&PieceDTO{}).Select("tracking_item_id").Where("box_id = ?", boxID.Bytes())).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllByPackBox retrieves every tracking item assigned to the pack box.
func (r *GormTrackingItemRepository) GetAllByPackBox(ctx context.Context, packBoxID kernel.UUID) ([]*tracking.TrackingItem, error) {
	if err := packBoxID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingItemDTO
	if err := r.db.WithContext(ctx).
		Preload("Pieces").
		Find(&dtos, "pack_box_id = ?", packBoxID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllExpired retrieves items whose retention deadline has passed, oldest first.
func (r *GormTrackingItemRepository) GetAllExpired(ctx context.Context, now time.Time, limit int) ([]*tracking.TrackingItem, error) {
	var dtos []TrackingItemDTO
	if err := r.db.WithContext(ctx).
		Preload("Pieces").
		Where("delete_at <= ?", now).
		Order("delete_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []TrackingItemDTO) ([]*tracking.TrackingItem, error) {
	items := make([]*tracking.TrackingItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
