// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Basic transaction management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//
//	if err := uow.TrackingItemRepository().Add(ctx, item); err != nil {
//	    uow.Rollback(ctx)
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Commands spanning several aggregates (a shipment commit touching the
// shipment, its boxes, every owning tracking item and the outbox) perform all
// repository operations on the same unit of work so they land in one
// transaction. Each UnitOfWork instance provides an isolated transaction;
// concurrent goroutines must use separate instances.
package postgres

import (
	"context"

	"parceltrack/internal/adapters/out/postgres/actionlogrepo"
	"parceltrack/internal/adapters/out/postgres/boxrepo"
	"parceltrack/internal/adapters/out/postgres/deliveryrepo"
	"parceltrack/internal/adapters/out/postgres/lotrepo"
	"parceltrack/internal/adapters/out/postgres/outboxrepo"
	"parceltrack/internal/adapters/out/postgres/shipmentrepo"
	"parceltrack/internal/adapters/out/postgres/trackingrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database
// connections. The factory ensures each business operation gets a fresh unit
// of work instance with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for business transaction
// management. Each instance maintains its own transaction state and aggregate
// tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates database transactions and tracks aggregate
// changes for business operations. Implements the Unit of Work pattern using
// GORM's transaction capabilities.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Subsequent repository operations will execute within this transaction context.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// current returns the handle repository calls should run on: the active
// transaction when one is open, the main connection otherwise.
func (uow *GormUnitOfWork) current() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// TrackingItemRepository provides tracking item persistence within the unit of work.
func (uow *GormUnitOfWork) TrackingItemRepository() ports.TrackingItemRepository {
	return trackingrepo.NewGormTrackingItemRepository(uow.current(), uow)
}

// BoxRepository provides box persistence within the unit of work.
func (uow *GormUnitOfWork) BoxRepository() ports.BoxRepository {
	return boxrepo.NewGormBoxRepository(uow.current(), uow)
}

// ShipmentRepository provides shipment persistence within the unit of work.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.current(), uow)
}

// LotRepository provides lot persistence within the unit of work.
func (uow *GormUnitOfWork) LotRepository() ports.LotRepository {
	return lotrepo.NewGormLotRepository(uow.current(), uow)
}

// PackBoxRepository provides pack box persistence within the unit of work.
func (uow *GormUnitOfWork) PackBoxRepository() ports.PackBoxRepository {
	return deliveryrepo.NewGormPackBoxRepository(uow.current(), uow)
}

// DeliveryRepository provides delivery persistence within the unit of work.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.current(), uow)
}

// OutboxRepository provides outbox persistence within the unit of work.
// Messages added here become visible to the drain job only after Commit,
// which is what makes the outbox transactional.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.current())
}

// ActionLog provides audit logging within the unit of work.
func (uow *GormUnitOfWork) ActionLog() ports.ActionLog {
	return actionlogrepo.NewGormActionLog(uow.current())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call this on Add and Update; the tracked
// aggregates enable post-transaction processing such as metrics.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
