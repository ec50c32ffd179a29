package outboxrepo

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
// No aggregate tracking here: outbox rows are infrastructure bookkeeping,
// not domain aggregates.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add saves a new outbox message to the database.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := messageFromDomain(message)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves sent/attempt bookkeeping on an existing message.
func (r *GormOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := messageFromDomain(message)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Delete removes a message from the outbox.
func (r *GormOutboxRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&MessageDTO{}, "id = ?", id.Bytes()).Error
}

// GetAllUnsent retrieves pending messages in creation order.
func (r *GormOutboxRepository) GetAllUnsent(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := messageToDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

// AddFailedJob dead-letters a side effect for operator inspection.
func (r *GormOutboxRepository) AddFailedJob(ctx context.Context, job *outbox.FailedJob) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := failedJobFromDomain(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}
