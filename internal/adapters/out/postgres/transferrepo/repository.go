package transferrepo

import (
	"context"
	"errors"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
	"stocktransfer/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM.
type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTransferRepository creates a new GORM transfer repository.
func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new transfer and its items to the database.
func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing transfer and its items. The header write carries
// the version token the aggregate was loaded with; if another transaction
// committed first the guarded update matches zero rows and the caller gets
// errs.ConcurrencyError with nothing written.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TransferDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":                dto.Status,
			"notes":                 dto.Notes,
			"consignment_reference": dto.ConsignmentReference,
			"sent_at":               dto.SentAt,
			"received_at":           dto.ReceivedAt,
			"updated_at":            dto.UpdatedAt,
			"version":               dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyError("transfer", aggregate.ID().String())
	}

	for _, item := range dto.Items {
		itemResult := r.db.WithContext(ctx).
			Model(&ItemDTO{}).
			Where("id = ? AND transfer_id = ?", item.ID, dto.ID).
			Updates(map[string]any{
				"received_qty":  item.ReceivedQty,
				"evidence_refs": item.EvidenceRefs,
			})
		if itemResult.Error != nil {
			return itemResult.Error
		}
		if itemResult.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("transfer item", item.ID.String())
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a transfer by ID with all of its items.
func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TransferDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		First(&dto, "id = ? AND type = ?", id.Bytes(), transfer.TypeStockTransfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transfer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
