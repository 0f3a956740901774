package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
	"stocktransfer/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetTransferQueryHandler reads one transfer directly from the database,
// bypassing the aggregate. Only rows tagged as stock transfers are visible;
// other transfer kinds sharing the table belong to other subsystems.
type GetTransferQueryHandler struct {
	db *gorm.DB
}

// NewGetTransferQueryHandler creates a handler for single transfer queries.
func NewGetTransferQueryHandler(db *gorm.DB) GetTransferQueryHandler {
	return GetTransferQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no stock
// transfer with the given id exists.
func (h GetTransferQueryHandler) Handle(
	ctx context.Context,
	query GetTransferQuery,
) (GetTransferQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTransferQueryResponse{}, err
	}

	var response GetTransferQueryResponse
	var id, sourceLocation, destinationLocation uuid.UUID
	var sentAt, receivedAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			source_location_id,
			destination_location_id,
			expected_date,
			notes,
			consignment_reference,
			created_at,
			sent_at,
			received_at
		FROM stock_transfers
		WHERE id = ? AND type = ?
	`, query.TransferID().Bytes(), transfer.TypeStockTransfer).Row()

	err := row.Scan(
		&id,
		&response.Status,
		&sourceLocation,
		&destinationLocation,
		&response.ExpectedDate,
		&response.Notes,
		&response.ConsignmentRef,
		&response.CreatedAt,
		&sentAt,
		&receivedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTransferQueryResponse{}, errs.NewObjectNotFoundError("transferID", query.TransferID().String())
	}
	if err != nil {
		return GetTransferQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetTransferQueryResponse{}, err
	}
	if response.SourceLocation, err = kernel.UUIDFromBytes(sourceLocation[:]); err != nil {
		return GetTransferQueryResponse{}, err
	}
	if response.DestinationLocation, err = kernel.UUIDFromBytes(destinationLocation[:]); err != nil {
		return GetTransferQueryResponse{}, err
	}
	response.SentAt = nullableTime(sentAt)
	response.ReceivedAt = nullableTime(receivedAt)

	if response.Items, err = h.loadItems(ctx, query.TransferID()); err != nil {
		return GetTransferQueryResponse{}, err
	}

	return response, nil
}

func (h GetTransferQueryHandler) loadItems(
	ctx context.Context,
	transferID kernel.UUID,
) ([]GetTransferItemResponse, error) {
	items := make([]GetTransferItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			ordered_qty,
			received_qty,
			evidence_refs
		FROM stock_transfer_items
		WHERE transfer_id = ?
		ORDER BY id
	`, transferID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetTransferItemResponse
		var id, productID uuid.UUID
		var evidenceRefs pq.StringArray

		err = rows.Scan(
			&id,
			&productID,
			&item.OrderedQty,
			&item.ReceivedQty,
			&evidenceRefs,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.EvidenceRefs = evidenceRefs
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
