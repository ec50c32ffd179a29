// Package boxrepo provides data transfer objects and mapping functions for
// box persistence.
package boxrepo

import (
	"parceltrack/internal/core/domain/model/box"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BoxDTO represents the database structure for persisting box aggregates.
type BoxDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	WeightKg    float64         `gorm:"type:numeric(8,2)"`
	ShipmentID  *uuid.UUID      `gorm:"type:uuid;index"`
	LotID       *uuid.UUID      `gorm:"type:uuid;index"`
	CustomItems []CustomItemDTO `gorm:"foreignKey:BoxID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for box entities.
func (BoxDTO) TableName() string {
	return "boxes"
}

// CustomItemDTO represents a non-tracked article packed into a box.
type CustomItemDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	BoxID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Quantity int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for custom item entities.
func (CustomItemDTO) TableName() string {
	return "box_custom_items"
}

// fromDomain converts a box aggregate to its database representation.
func fromDomain(b *box.Box) BoxDTO {
	boxID := b.ID().Bytes()

	customItems := make([]CustomItemDTO, 0, len(b.CustomItems()))
	for _, ci := range b.CustomItems() {
		customItems = append(customItems, CustomItemDTO{
			BoxID:    boxID,
			Name:     ci.Name,
			Quantity: ci.Quantity,
		})
	}

	return BoxDTO{
		ID:          boxID,
		Code:        b.Code(),
		WeightKg:    b.WeightKg(),
		ShipmentID:  uuidPtrBytes(b.ShipmentID()),
		LotID:       uuidPtrBytes(b.LotID()),
		CustomItems: customItems,
	}
}

// toDomain converts a database DTO to a box aggregate using RestoreBox.
func toDomain(dto BoxDTO) (*box.Box, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := uuidPtrFromBytes(dto.ShipmentID)
	if err != nil {
		return nil, err
	}
	lotID, err := uuidPtrFromBytes(dto.LotID)
	if err != nil {
		return nil, err
	}

	customItems := make([]box.CustomItem, 0, len(dto.CustomItems))
	for _, ci := range dto.CustomItems {
		customItems = append(customItems, box.CustomItem{Name: ci.Name, Quantity: ci.Quantity})
	}

	return box.RestoreBox(id, dto.Code, dto.WeightKg, shipmentID, lotID, customItems)
}

func uuidPtrBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func uuidPtrFromBytes(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
