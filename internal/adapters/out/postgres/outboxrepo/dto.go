// Package outboxrepo provides data transfer objects and mapping functions for
// the transactional outbox and the dead-letter table.
package outboxrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox messages.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic     string    `gorm:"type:varchar(255);not null"`
	Key       string    `gorm:"type:varchar(255)"`
	Payload   []byte    `gorm:"type:bytea;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	SentAt    *time.Time
	Attempts  int `gorm:"type:int;not null;default:0"`
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// FailedJobDTO represents the database structure for dead-lettered jobs.
type FailedJobDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind           string    `gorm:"type:varchar(64);not null;index"`
	TrackingNumber string    `gorm:"type:varchar(64);index"`
	Payload        []byte    `gorm:"type:bytea"`
	ErrorText      string    `gorm:"type:text"`
	FailedAt       time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for dead-lettered jobs.
func (FailedJobDTO) TableName() string {
	return "failed_jobs"
}

// messageFromDomain converts an outbox message to its database representation.
func messageFromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID().Bytes(),
		Topic:     m.Topic(),
		Key:       m.Key(),
		Payload:   m.Payload(),
		CreatedAt: m.CreatedAt(),
		SentAt:    m.SentAt(),
		Attempts:  m.Attempts(),
	}
}

// messageToDomain converts a database DTO to an outbox message using RestoreMessage.
func messageToDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(id, dto.Topic, dto.Key, dto.Payload, dto.CreatedAt, dto.SentAt, dto.Attempts)
}

// failedJobFromDomain converts a dead-lettered job to its database representation.
func failedJobFromDomain(j *outbox.FailedJob) FailedJobDTO {
	return FailedJobDTO{
		ID:             j.ID().Bytes(),
		Kind:           j.Kind(),
		TrackingNumber: j.TrackingNumber(),
		Payload:        j.Payload(),
		ErrorText:      j.ErrorText(),
		FailedAt:       j.FailedAt(),
	}
}
