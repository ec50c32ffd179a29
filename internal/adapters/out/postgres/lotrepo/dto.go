// Package lotrepo provides data transfer objects and mapping functions for
// lot persistence.
package lotrepo

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/lot"

	"github.com/google/uuid"
)

// LotDTO represents the database structure for persisting lot aggregates.
type LotDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Label string    `gorm:"type:varchar(255);not null;index"`
	Index int       `gorm:"column:idx;type:int;not null"`
}

// TableName specifies the database table name for lot entities.
func (LotDTO) TableName() string {
	return "lots"
}

// fromDomain converts a lot aggregate to its database representation.
func fromDomain(l *lot.Lot) LotDTO {
	return LotDTO{
		ID:    l.ID().Bytes(),
		Label: l.Label(),
		Index: l.Index(),
	}
}

// toDomain converts a database DTO to a lot aggregate using RestoreLot.
func toDomain(dto LotDTO) (*lot.Lot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return lot.RestoreLot(id, dto.Label, dto.Index)
}
