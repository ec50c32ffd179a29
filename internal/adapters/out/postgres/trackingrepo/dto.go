// Package trackingrepo provides data transfer objects and mapping functions
// for tracking item persistence. This package implements the repository
// pattern for the tracking item aggregate, handling the conversion between
// domain entities and database representations.
package trackingrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingItemDTO represents the database structure for persisting tracking
// item aggregates. Stage timestamps are nullable columns; the derived status
// never hits the database.
type TrackingItemDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	AlternateRef   string     `gorm:"type:varchar(64)"`
	ChainKey       string     `gorm:"type:varchar(64);index"`
	AgentCode      string     `gorm:"type:varchar(32);index"`
	WarehouseID    *uuid.UUID `gorm:"type:uuid"`
	PackBoxID      *uuid.UUID `gorm:"type:uuid;index"`

	RegisteredAt   *time.Time
	ReceivedAtUSAt *time.Time `gorm:"column:received_at_us_at"`
	RepackingAt    *time.Time
	RepackedAt     *time.Time
	BoxedAt        *time.Time
	FlyingBackAt   *time.Time
	ReceivedAtVNAt *time.Time `gorm:"column:received_at_vn_at"`

	DeliveredAt     *time.Time
	ReturnRequestAt *time.Time
	DeleteAt        time.Time `gorm:"not null;index"`

	Pieces []PieceDTO `gorm:"foreignKey:TrackingItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for tracking item entities.
func (TrackingItemDTO) TableName() string {
	return "tracking_items"
}

// PieceDTO represents the database structure for persisting piece entities.
// Links to the owning tracking item via foreign key and optionally references
// the box holding the piece.
type PieceDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Information    string     `gorm:"type:varchar(255);not null"`
	BoxID          *uuid.UUID `gorm:"type:uuid;index"`
	BoxedAt        *time.Time
	FlyingBackAt   *time.Time
	ReceivedAtVNAt *time.Time `gorm:"column:received_at_vn_at"`
}

// TableName specifies the database table name for piece entities.
func (PieceDTO) TableName() string {
	return "pieces"
}

// fromDomain converts a tracking item aggregate to its database representation,
// spreading the stage timestamp map over the nullable columns.
func fromDomain(item *tracking.TrackingItem) TrackingItemDTO {
	itemID := item.ID().Bytes()

	pieces := make([]PieceDTO, 0, len(item.Pieces()))
	for _, p := range item.Pieces() {
		pieces = append(pieces, PieceDTO{
			ID:             p.ID().Bytes(),
			TrackingItemID: itemID,
			Information:    p.Information(),
			BoxID:          uuidPtrBytes(p.BoxID()),
			BoxedAt:        p.BoxedAt(),
			FlyingBackAt:   p.FlyingBackAt(),
			ReceivedAtVNAt: p.ReceivedAtVNAt(),
		})
	}

	return TrackingItemDTO{
		ID:              itemID,
		TrackingNumber:  item.TrackingNumber(),
		AlternateRef:    item.AlternateRef(),
		ChainKey:        item.ChainKey(),
		AgentCode:       item.AgentCode(),
		WarehouseID:     uuidPtrBytes(item.WarehouseID()),
		PackBoxID:       uuidPtrBytes(item.PackBoxID()),
		RegisteredAt:    item.StageTime(tracking.StageRegistered),
		ReceivedAtUSAt:  item.StageTime(tracking.StageReceivedAtUS),
		RepackingAt:     item.StageTime(tracking.StageRepacking),
		RepackedAt:      item.StageTime(tracking.StageRepacked),
		BoxedAt:         item.StageTime(tracking.StageBoxed),
		FlyingBackAt:    item.StageTime(tracking.StageFlyingBack),
		ReceivedAtVNAt:  item.StageTime(tracking.StageReceivedAtVN),
		DeliveredAt:     item.DeliveredAt(),
		ReturnRequestAt: item.ReturnRequestAt(),
		DeleteAt:        item.DeleteAt(),
		Pieces:          pieces,
	}
}

// toDomain converts a database DTO to a tracking item aggregate.
// Reconstructs the complete aggregate including pieces using RestoreTrackingItem.
func toDomain(dto TrackingItemDTO) (*tracking.TrackingItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := uuidPtrFromBytes(dto.WarehouseID)
	if err != nil {
		return nil, err
	}
	packBoxID, err := uuidPtrFromBytes(dto.PackBoxID)
	if err != nil {
		return nil, err
	}

	stageTimes := make(map[tracking.Stage]time.Time)
	collectStageTime(stageTimes, tracking.StageRegistered, dto.RegisteredAt)
	collectStageTime(stageTimes, tracking.StageReceivedAtUS, dto.ReceivedAtUSAt)
	collectStageTime(stageTimes, tracking.StageRepacking, dto.RepackingAt)
	collectStageTime(stageTimes, tracking.StageRepacked, dto.RepackedAt)
	collectStageTime(stageTimes, tracking.StageBoxed, dto.BoxedAt)
	collectStageTime(stageTimes, tracking.StageFlyingBack, dto.FlyingBackAt)
	collectStageTime(stageTimes, tracking.StageReceivedAtVN, dto.ReceivedAtVNAt)

	pieces := make([]*tracking.Piece, 0, len(dto.Pieces))
	for _, pDto := range dto.Pieces {
		p, pErr := pieceToDomain(pDto)
		if pErr != nil {
			return nil, pErr
		}
		pieces = append(pieces, p)
	}

	return tracking.RestoreTrackingItem(
		id,
		dto.TrackingNumber, dto.AlternateRef, dto.ChainKey, dto.AgentCode,
		warehouseID, packBoxID,
		stageTimes,
		dto.DeliveredAt, dto.ReturnRequestAt,
		dto.DeleteAt,
		pieces,
	)
}

// pieceToDomain converts a piece DTO to its domain entity using RestorePiece.
func pieceToDomain(dto PieceDTO) (*tracking.Piece, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	boxID, err := uuidPtrFromBytes(dto.BoxID)
	if err != nil {
		return nil, err
	}

	return tracking.RestorePiece(id, dto.Information, boxID, dto.BoxedAt, dto.FlyingBackAt, dto.ReceivedAtVNAt)
}

func collectStageTime(times map[tracking.Stage]time.Time, stage tracking.Stage, at *time.Time) {
	if at != nil {
		times[stage] = *at
	}
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
