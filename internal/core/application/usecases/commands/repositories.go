// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// ledger mutation, and persistence — each operation is one atomic unit.
package commands

import (
	"context"

	"stocktransfer/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// TransferRepoFactory provides access to the transfer repository within a transaction.
	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	// InventoryLedgerFactory provides access to the inventory ledger within a transaction.
	InventoryLedgerFactory interface {
		InventoryLedger() ports.InventoryLedger
	}

	// TrackingQueueFactory provides access to the tracking job queue within a transaction.
	TrackingQueueFactory interface {
		TrackingQueueRepository() ports.TrackingQueueRepository
	}

	// TransferUoW manages transactions for operations touching a transfer and
	// the stock ledger: create, receive, and cancel.
	TransferUoW interface {
		TxManager
		TransferRepoFactory
		InventoryLedgerFactory
	}

	// TransferUoWFactory creates new transfer unit of work instances.
	TransferUoWFactory interface {
		Create() TransferUoW
	}

	// SendUoW manages the dispatch transaction, which additionally enqueues
	// the consignment tracking job alongside the transfer and ledger writes.
	SendUoW interface {
		TxManager
		TransferRepoFactory
		InventoryLedgerFactory
		TrackingQueueFactory
	}

	// SendUoWFactory creates new dispatch unit of work instances.
	SendUoWFactory interface {
		Create() SendUoW
	}
)
