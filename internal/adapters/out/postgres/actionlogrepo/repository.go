// Package actionlogrepo provides a GORM-backed audit log. Entries are
// append-only rows recorded inside the command's transaction.
package actionlogrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionLogDTO represents the database structure for audit entries.
type ActionLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Action     string    `gorm:"type:varchar(64);not null;index"`
	Subject    string    `gorm:"type:varchar(255);not null;index"`
	Detail     string    `gorm:"type:text"`
	RecordedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for audit entries.
func (ActionLogDTO) TableName() string {
	return "action_logs"
}

// GormActionLog implements ActionLog using GORM.
type GormActionLog struct {
	db *gorm.DB
}

// NewGormActionLog creates a new GORM action log.
func NewGormActionLog(db *gorm.DB) *GormActionLog {
	return &GormActionLog{db: db}
}

// Record appends an audit entry.
func (l *GormActionLog) Record(ctx context.Context, action, subject, detail string) error {
	dto := ActionLogDTO{
		ID:         uuid.New(),
		Action:     action,
		Subject:    subject,
		Detail:     detail,
		RecordedAt: time.Now().UTC(),
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}
