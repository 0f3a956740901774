package queries

import (
	"context"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetIncompleteTransfersQueryHandler lists transfers that still need action:
// drafts awaiting dispatch and dispatched transfers awaiting stock.
type GetIncompleteTransfersQueryHandler struct {
	db *gorm.DB
}

// NewGetIncompleteTransfersQueryHandler creates a handler for in-flight transfer queries.
func NewGetIncompleteTransfersQueryHandler(db *gorm.DB) GetIncompleteTransfersQueryHandler {
	return GetIncompleteTransfersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by id for consistent output.
func (h GetIncompleteTransfersQueryHandler) Handle(
	ctx context.Context,
	query GetIncompleteTransfersQuery,
) ([]GetIncompleteTransfersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transfers := make([]GetIncompleteTransfersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			source_location_id,
			destination_location_id,
			expected_date,
			created_at
		FROM stock_transfers
		WHERE type = ? AND status NOT IN (?, ?)
		ORDER BY id
	`, transfer.TypeStockTransfer, transfer.Received.String(), transfer.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetIncompleteTransfersQueryResponse
		var id, sourceLocation, destinationLocation uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Status,
			&sourceLocation,
			&destinationLocation,
			&resp.ExpectedDate,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.SourceLocation, err = kernel.UUIDFromBytes(sourceLocation[:]); err != nil {
			return nil, err
		}
		if resp.DestinationLocation, err = kernel.UUIDFromBytes(destinationLocation[:]); err != nil {
			return nil, err
		}
		transfers = append(transfers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return transfers, nil
}
