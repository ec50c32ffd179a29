package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// TrackingItemRepository returns a repository bound to the current transaction.
	TrackingItemRepository() TrackingItemRepository

	// BoxRepository returns a repository bound to the current transaction.
	BoxRepository() BoxRepository

	// ShipmentRepository returns a repository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// LotRepository returns a repository bound to the current transaction.
	LotRepository() LotRepository

	// PackBoxRepository returns a repository bound to the current transaction.
	PackBoxRepository() PackBoxRepository

	// DeliveryRepository returns a repository bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// OutboxRepository returns a repository bound to the current transaction.
	OutboxRepository() OutboxRepository

	// ActionLog returns the audit log bound to the current transaction.
	ActionLog() ActionLog
}
