// Package transferrepo provides data transfer objects and mapping functions
// for stock transfer persistence. It implements the repository pattern for the
// transfer aggregate, handling conversion between domain entities and their
// database representation.
package transferrepo

import (
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TransferDTO represents the database structure for persisting transfer
// aggregates. The stock_transfers table is shared with other transfer kinds;
// the Type column scopes every access to stock transfers.
type TransferDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type                  string    `gorm:"index"`
	Status                string    `gorm:"index"`
	SourceLocationID      uuid.UUID `gorm:"type:uuid"`
	DestinationLocationID uuid.UUID `gorm:"type:uuid"`
	ExpectedDate          time.Time
	Notes                 string
	ConsignmentReference  string
	CreatedAt             time.Time
	SentAt                *time.Time
	ReceivedAt            *time.Time
	UpdatedAt             time.Time
	// Version is the optimistic concurrency token; every committed update
	// increments it.
	Version int
	Items   []ItemDTO `gorm:"foreignKey:TransferID;references:ID"`
}

// TableName specifies the database table name for transfer entities.
func (TransferDTO) TableName() string {
	return "stock_transfers"
}

// ItemDTO represents one product line of a stock transfer.
type ItemDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TransferID   uuid.UUID      `gorm:"type:uuid;index"`
	ProductID    uuid.UUID      `gorm:"type:uuid;index"`
	OrderedQty   int
	ReceivedQty  int
	EvidenceRefs pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for transfer item entities.
func (ItemDTO) TableName() string {
	return "stock_transfer_items"
}

// fromDomain converts a transfer domain aggregate to its database representation.
func fromDomain(aggregate *transfer.Transfer) TransferDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:           item.ID().Bytes(),
			TransferID:   aggregate.ID().Bytes(),
			ProductID:    item.ProductID().Bytes(),
			OrderedQty:   item.OrderedQty(),
			ReceivedQty:  item.ReceivedQty(),
			EvidenceRefs: item.EvidenceRefs(),
		})
	}

	return TransferDTO{
		ID:                    aggregate.ID().Bytes(),
		Type:                  aggregate.Type(),
		Status:                aggregate.Status().String(),
		SourceLocationID:      aggregate.SourceLocation().Bytes(),
		DestinationLocationID: aggregate.DestinationLocation().Bytes(),
		ExpectedDate:          aggregate.ExpectedDate(),
		Notes:                 aggregate.Notes(),
		ConsignmentReference:  aggregate.ConsignmentRef(),
		CreatedAt:             aggregate.CreatedAt(),
		SentAt:                aggregate.SentAt(),
		ReceivedAt:            aggregate.ReceivedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
		Version:               aggregate.Version(),
		Items:                 items,
	}
}

// toDomain converts a database DTO to a transfer domain aggregate using
// RestoreTransfer, preserving status, timestamps, and the version token.
func toDomain(dto TransferDTO) (*transfer.Transfer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sourceLocation, err := kernel.UUIDFromBytes(dto.SourceLocationID[:])
	if err != nil {
		return nil, err
	}
	destinationLocation, err := kernel.UUIDFromBytes(dto.DestinationLocationID[:])
	if err != nil {
		return nil, err
	}
	status, err := transfer.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*transfer.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return transfer.RestoreTransfer(
		id,
		status,
		sourceLocation,
		destinationLocation,
		dto.ExpectedDate,
		dto.Notes,
		dto.ConsignmentReference,
		items,
		dto.CreatedAt,
		dto.SentAt,
		dto.ReceivedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}

func itemToDomain(dto ItemDTO) (*transfer.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return transfer.RestoreItem(id, productID, dto.OrderedQty, dto.ReceivedQty, dto.EvidenceRefs)
}
