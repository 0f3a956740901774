package ports

import (
	"context"

	"stocktransfer/internal/core/domain/model/inventory"
	"stocktransfer/internal/core/domain/model/kernel"
)

// InventoryLedger is the only writer of stock counters. Every mutation is an
// atomic SQL delta applied inside the transaction of the operation that owns
// it, so ledger calls obtained from a unit of work commit or roll back with
// the rest of that operation.
//
// Deltas are unconditional: the ledger does not floor counters at zero.
// Callers that require non-negative stock must check before adjusting.
type InventoryLedger interface {
	// AdjustActualStock moves the physical stock counter for a product at a
	// location by delta (positive or negative).
	AdjustActualStock(ctx context.Context, productID, locationID kernel.UUID, delta int) error

	// AdjustExpectedStock moves the reserved-by-transfer counter for a product
	// at a location by delta (positive or negative).
	AdjustExpectedStock(ctx context.Context, productID, locationID kernel.UUID, delta int) error

	// Get returns the current stock position for a product at a location.
	// Returns errs.ObjectNotFoundError when no record exists for the pair.
	Get(ctx context.Context, productID, locationID kernel.UUID) (*inventory.Record, error)
}
