package inventoryrepo

import (
	"context"
	"errors"
	"time"

	"stocktransfer/internal/core/domain/model/inventory"
	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryLedger implements the InventoryLedger port using GORM.
// A missing counter row is created on first adjustment, so deltas against
// products the outlet has never stocked still land.
type GormInventoryLedger struct {
	db *gorm.DB
}

// NewGormInventoryLedger creates a new GORM inventory ledger.
func NewGormInventoryLedger(db *gorm.DB) *GormInventoryLedger {
	return &GormInventoryLedger{db: db}
}

// AdjustActualStock moves the physical stock counter by delta.
func (r *GormInventoryLedger) AdjustActualStock(
	ctx context.Context,
	productID, locationID kernel.UUID,
	delta int,
) error {
	return r.adjust(ctx, productID, locationID, "inventory_count", delta)
}

// AdjustExpectedStock moves the reserved-by-transfer counter by delta.
func (r *GormInventoryLedger) AdjustExpectedStock(
	ctx context.Context,
	productID, locationID kernel.UUID,
	delta int,
) error {
	return r.adjust(ctx, productID, locationID, "expected_stock", delta)
}

func (r *GormInventoryLedger) adjust(
	ctx context.Context,
	productID, locationID kernel.UUID,
	column string,
	delta int,
) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if err := locationID.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	dto := InventoryDTO{
		ProductID: productID.Bytes(),
		OutletID:  locationID.Bytes(),
		UpdatedAt: now,
	}
	switch column {
	case "inventory_count":
		dto.InventoryCount = delta
	case "expected_stock":
		dto.ExpectedStock = delta
	}

	// The delta is applied in SQL, never in Go, so concurrent adjustments
	// against the same row serialize inside the database.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "product_id"}, {Name: "outlet_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			column:       gorm.Expr("vend_inventory."+column+" + ?", delta),
			"updated_at": now,
		}),
	}).Create(&dto).Error
}

// Get returns the current stock position for a product at a location.
func (r *GormInventoryLedger) Get(
	ctx context.Context,
	productID, locationID kernel.UUID,
) (*inventory.Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "product_id = ? AND outlet_id = ?", productID.Bytes(), locationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory record", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
