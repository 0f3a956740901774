package queries

import (
	"context"

	"stocktransfer/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStockOnHandQueryHandler reads the inventory counters for a location.
type GetStockOnHandQueryHandler struct {
	db *gorm.DB
}

// NewGetStockOnHandQueryHandler creates a handler for stock position queries.
func NewGetStockOnHandQueryHandler(db *gorm.DB) GetStockOnHandQueryHandler {
	return GetStockOnHandQueryHandler{db: db}
}

// Handle executes the query. Returns one row per product with a counter at the
// location, sorted by product id. A location with no inventory rows yields an
// empty slice, not an error.
func (h GetStockOnHandQueryHandler) Handle(
	ctx context.Context,
	query GetStockOnHandQuery,
) ([]GetStockOnHandQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	positions := make([]GetStockOnHandQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			inventory_count,
			expected_stock
		FROM vend_inventory
		WHERE outlet_id = ?
		ORDER BY product_id
	`, query.LocationID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var position GetStockOnHandQueryResponse
		var productID uuid.UUID

		err = rows.Scan(
			&productID,
			&position.ActualStock,
			&position.ExpectedStock,
		)
		if err != nil {
			return nil, err
		}

		if position.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		positions = append(positions, position)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return positions, nil
}
