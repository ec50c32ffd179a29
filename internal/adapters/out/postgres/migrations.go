package postgres

import (
	"gorm.io/gorm"

	"parceltrack/internal/adapters/out/postgres/actionlogrepo"
	"parceltrack/internal/adapters/out/postgres/boxrepo"
	"parceltrack/internal/adapters/out/postgres/deliveryrepo"
	"parceltrack/internal/adapters/out/postgres/lotrepo"
	"parceltrack/internal/adapters/out/postgres/outboxrepo"
	"parceltrack/internal/adapters/out/postgres/shipmentrepo"
	"parceltrack/internal/adapters/out/postgres/trackingrepo"
)

// Migrate creates or updates the database schema for every persisted
// aggregate. Parent tables run before child tables so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&lotrepo.LotDTO{},
		&boxrepo.BoxDTO{},
		&boxrepo.CustomItemDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.PackBoxDTO{},
		&trackingrepo.TrackingItemDTO{},
		&trackingrepo.PieceDTO{},
		&outboxrepo.MessageDTO{},
		&outboxrepo.FailedJobDTO{},
		&actionlogrepo.ActionLogDTO{},
	)
}
