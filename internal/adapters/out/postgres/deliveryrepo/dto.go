// Package deliveryrepo provides data transfer objects and mapping functions
// for the VN-side delivery aggregates: pack boxes and deliveries.
package deliveryrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PackBoxDTO represents the database structure for persisting pack box aggregates.
type PackBoxDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code       string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	DeliveryID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for pack box entities.
func (PackBoxDTO) TableName() string {
	return "pack_boxes"
}

// DeliveryDTO represents the database structure for persisting delivery aggregates.
type DeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code        string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	CommittedAt *time.Time
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// packBoxFromDomain converts a pack box aggregate to its database representation.
func packBoxFromDomain(p *delivery.PackBox) PackBoxDTO {
	var deliveryID *uuid.UUID
	if id := p.DeliveryID(); id != nil {
		raw := id.Bytes()
		deliveryID = &raw
	}

	return PackBoxDTO{
		ID:         p.ID().Bytes(),
		Code:       p.Code(),
		DeliveryID: deliveryID,
	}
}

// packBoxToDomain converts a database DTO to a pack box aggregate using RestorePackBox.
func packBoxToDomain(dto PackBoxDTO) (*delivery.PackBox, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if dErr != nil {
			return nil, dErr
		}
		deliveryID = &dID
	}

	return delivery.RestorePackBox(id, dto.Code, deliveryID)
}

// deliveryFromDomain converts a delivery aggregate to its database representation.
func deliveryFromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:          d.ID().Bytes(),
		Code:        d.Code(),
		CommittedAt: d.CommittedAt(),
	}
}

// deliveryToDomain converts a database DTO to a delivery aggregate using RestoreDelivery.
func deliveryToDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, dto.Code, dto.CommittedAt)
}
