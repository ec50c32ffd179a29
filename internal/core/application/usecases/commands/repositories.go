// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Handlers depend on the narrowest interface covering the repositories they
// touch, so tests mock only what a handler actually uses.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TrackingItemRepoFactory provides access to the tracking item repository within a transaction.
	TrackingItemRepoFactory interface {
		TrackingItemRepository() ports.TrackingItemRepository
	}

	// BoxRepoFactory provides access to the box repository within a transaction.
	BoxRepoFactory interface {
		BoxRepository() ports.BoxRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// LotRepoFactory provides access to the lot repository within a transaction.
	LotRepoFactory interface {
		LotRepository() ports.LotRepository
	}

	// PackBoxRepoFactory provides access to the pack box repository within a transaction.
	PackBoxRepoFactory interface {
		PackBoxRepository() ports.PackBoxRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// ActionLogFactory provides access to the audit log within a transaction.
	ActionLogFactory interface {
		ActionLog() ports.ActionLog
	}

	// TrackingUoW manages transactions for tracking-item-only operations.
	TrackingUoW interface {
		TxManager
		TrackingItemRepoFactory
	}

	// TrackingUoWFactory creates new tracking unit of work instances.
	TrackingUoWFactory interface {
		Create() TrackingUoW
	}

	// TrackingAuditUoW manages transactions for tracking-item changes that
	// leave an audit entry but emit no notification, such as rollbacks.
	TrackingAuditUoW interface {
		TxManager
		TrackingItemRepoFactory
		ActionLogFactory
	}

	// TrackingAuditUoWFactory creates new tracking+audit unit of work instances.
	TrackingAuditUoWFactory interface {
		Create() TrackingAuditUoW
	}

	// TrackingOutboxUoW manages transactions for status changes that emit
	// notifications: the state change, the outbox intent and the audit entry
	// land in one transaction.
	TrackingOutboxUoW interface {
		TxManager
		TrackingItemRepoFactory
		OutboxRepoFactory
		ActionLogFactory
	}

	// TrackingOutboxUoWFactory creates new tracking+outbox unit of work instances.
	TrackingOutboxUoWFactory interface {
		Create() TrackingOutboxUoW
	}

	// BoxUoW manages transactions for box-only operations.
	BoxUoW interface {
		TxManager
		BoxRepoFactory
	}

	// BoxUoWFactory creates new box unit of work instances.
	BoxUoWFactory interface {
		Create() BoxUoW
	}

	// BoxTrackingUoW manages transactions spanning boxes and the tracking
	// items owning their pieces. Boxing pieces can promote the owning item,
	// so the notification outbox and audit log ride along.
	BoxTrackingUoW interface {
		TxManager
		BoxRepoFactory
		TrackingItemRepoFactory
		OutboxRepoFactory
		ActionLogFactory
	}

	// BoxTrackingUoWFactory creates new box+tracking unit of work instances.
	BoxTrackingUoWFactory interface {
		Create() BoxTrackingUoW
	}

	// BoxLotUoW manages transactions spanning boxes and lots.
	BoxLotUoW interface {
		TxManager
		BoxRepoFactory
		LotRepoFactory
	}

	// BoxLotUoWFactory creates new box+lot unit of work instances.
	BoxLotUoWFactory interface {
		Create() BoxLotUoW
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// ShipmentCascadeUoW manages the commit/uncommit cascade: the shipment,
	// its boxes, every owning tracking item, the outbox and the audit log
	// change in one transaction.
	ShipmentCascadeUoW interface {
		TxManager
		ShipmentRepoFactory
		BoxRepoFactory
		TrackingItemRepoFactory
		OutboxRepoFactory
		ActionLogFactory
	}

	// ShipmentCascadeUoWFactory creates new shipment cascade unit of work instances.
	ShipmentCascadeUoWFactory interface {
		Create() ShipmentCascadeUoW
	}

	// LotUoW manages transactions for lot-only operations.
	LotUoW interface {
		TxManager
		LotRepoFactory
	}

	// LotUoWFactory creates new lot unit of work instances.
	LotUoWFactory interface {
		Create() LotUoW
	}

	// PackBoxUoW manages transactions for pack-box-only operations.
	PackBoxUoW interface {
		TxManager
		PackBoxRepoFactory
	}

	// PackBoxUoWFactory creates new pack box unit of work instances.
	PackBoxUoWFactory interface {
		Create() PackBoxUoW
	}

	// PackBoxTrackingUoW manages transactions spanning pack boxes and
	// tracking items. Packing mutates the item, so the audit log rides along.
	PackBoxTrackingUoW interface {
		TxManager
		PackBoxRepoFactory
		TrackingItemRepoFactory
		ActionLogFactory
	}

	// PackBoxTrackingUoWFactory creates new pack box+tracking unit of work instances.
	PackBoxTrackingUoWFactory interface {
		Create() PackBoxTrackingUoW
	}

	// DeliveryUoW manages transactions for delivery-only operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	// DeliveryUoWFactory creates new delivery unit of work instances.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// DeliveryCascadeUoW manages the delivery commit/uncommit cascade.
	DeliveryCascadeUoW interface {
		TxManager
		DeliveryRepoFactory
		PackBoxRepoFactory
		TrackingItemRepoFactory
		ActionLogFactory
	}

	// DeliveryCascadeUoWFactory creates new delivery cascade unit of work instances.
	DeliveryCascadeUoWFactory interface {
		Create() DeliveryCascadeUoW
	}

	// OutboxUoW manages transactions for the outbox drain job.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
