// Package inventoryrepo implements the inventory ledger port over the shared
// vend_inventory table. Stock counters are adjusted with atomic SQL deltas so
// concurrent transfers never lose increments to read-modify-write races.
package inventoryrepo

import (
	"time"

	"stocktransfer/internal/core/domain/model/inventory"
	"stocktransfer/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InventoryDTO represents one product's stock counters at one outlet. The
// table is shared with the point-of-sale system, which owns its other columns;
// this service only touches the two counters.
type InventoryDTO struct {
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OutletID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	InventoryCount int
	ExpectedStock  int
	UpdatedAt      time.Time
}

// TableName specifies the database table name for inventory records.
func (InventoryDTO) TableName() string {
	return "vend_inventory"
}

// toDomain converts a database DTO to an inventory record.
func toDomain(dto InventoryDTO) (*inventory.Record, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	outletID, err := kernel.UUIDFromBytes(dto.OutletID[:])
	if err != nil {
		return nil, err
	}

	return inventory.NewRecord(productID, outletID, dto.InventoryCount, dto.ExpectedStock)
}
