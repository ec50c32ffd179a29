// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence.
package shipmentrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
type ShipmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CommittedAt *time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(s *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:          s.ID().Bytes(),
		Code:        s.Code(),
		CommittedAt: s.CommittedAt(),
	}
}

// toDomain converts a database DTO to a shipment aggregate using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(id, dto.Code, dto.CommittedAt)
}
