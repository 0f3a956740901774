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
// It provides transaction control and hands out repositories bound to the
// active transaction. Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// TransferRepository returns a TransferRepository bound to the current transaction.
	TransferRepository() TransferRepository

	// InventoryLedger returns an InventoryLedger bound to the current transaction.
	InventoryLedger() InventoryLedger

	// TrackingQueueRepository returns a TrackingQueueRepository bound to the current transaction.
	TrackingQueueRepository() TrackingQueueRepository
}
