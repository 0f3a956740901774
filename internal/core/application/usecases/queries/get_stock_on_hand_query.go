package queries

import (
	"errors"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrGetStockOnHandQueryIsNotConstructed = errors.New(
		"GetStockOnHandQuery must be created via NewGetStockOnHandQuery constructor",
	)
)

// GetStockOnHandQuery retrieves the per-product stock position at one
// location: what is physically there and what is expected from in-flight
// transfers.
type GetStockOnHandQuery struct {
	locationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStockOnHandQuery creates a query for a location's stock position.
func NewGetStockOnHandQuery(locationID kernel.UUID) (GetStockOnHandQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetStockOnHandQuery{}, err
	}

	return GetStockOnHandQuery{
		locationID: locationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// LocationID returns the location being inspected.
func (q GetStockOnHandQuery) LocationID() kernel.UUID {
	return q.locationID
}

// Validate ensures the query was created through the constructor.
func (q GetStockOnHandQuery) Validate() error {
	return q.guard.Validate(ErrGetStockOnHandQueryIsNotConstructed)
}

// GetStockOnHandQueryResponse is one product's stock position at the
// requested location.
type GetStockOnHandQueryResponse struct {
	ProductID     kernel.UUID
	ActualStock   int
	ExpectedStock int
}
