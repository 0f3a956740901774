// Package ports defines the contracts between the transfer core and
// infrastructure: persistence, the inventory ledger, the external consignment
// gateway, and the tracking job queue. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
)

// TransferRepository defines the persistence contract for transfer aggregates.
type TransferRepository interface {
	// Add persists a new transfer aggregate with its items.
	// The transfer must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *transfer.Transfer) error

	// Update persists changes to an existing transfer aggregate and its items.
	// The write is guarded by the aggregate's version token: if another caller
	// committed a change to the same transfer first, Update returns
	// errs.ConcurrencyError and nothing is written.
	Update(ctx context.Context, aggregate *transfer.Transfer) error

	// Get retrieves a transfer aggregate by its unique identifier,
	// including all of its items. Returns errs.ObjectNotFoundError when
	// no such transfer exists.
	Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error)
}
