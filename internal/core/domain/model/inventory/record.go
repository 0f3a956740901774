package inventory

import (
	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/guard"
)

// Record is the stock position for one (product, location) pair.
//
// Two counters are tracked side by side:
//   - actual stock: units physically present at the location
//   - expected stock: units reserved by in-flight transfers, not yet arrived
//
// Records are mutated only through the inventory ledger inside the owning
// operation's transaction; nothing else writes these counters. The ledger
// applies deltas atomically in SQL, so a Record loaded into memory is a
// snapshot for reading, never a write buffer.
type Record struct {
	productID     kernel.UUID
	locationID    kernel.UUID
	actualStock   int
	expectedStock int

	guard guard.ConstructorGuard
}

// ErrRecordIsNotConstructed guards against zero-value Records.
var ErrRecordIsNotConstructed = guard.ErrDefaultConstructorGuard

// NewRecord creates a stock snapshot for a product at a location.
// Negative counters are representable on purpose: the ledger's send-side
// decrement is unconditional, so positions can legitimately go below zero.
func NewRecord(productID, locationID kernel.UUID, actualStock, expectedStock int) (*Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	return &Record{
		productID:     productID,
		locationID:    locationID,
		actualStock:   actualStock,
		expectedStock: expectedStock,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Record was created through NewRecord.
func (r *Record) Validate() error {
	if r == nil {
		return ErrRecordIsNotConstructed
	}
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// ProductID returns the product this record counts.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// LocationID returns the location holding the stock.
func (r *Record) LocationID() kernel.UUID {
	return r.locationID
}

// ActualStock returns the physically present unit count.
func (r *Record) ActualStock() int {
	return r.actualStock
}

// ExpectedStock returns the unit count reserved by in-flight transfers.
func (r *Record) ExpectedStock() int {
	return r.expectedStock
}
