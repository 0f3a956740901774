package transfer

import (
	"errors"
	"fmt"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/errs"
	"stocktransfer/internal/pkg/guard"
)

// Domain errors for transfer items.
var (
	// ErrOrderedQtyIsInvalid is returned when an item is created with a non-positive ordered quantity.
	ErrOrderedQtyIsInvalid = errs.NewValueIsInvalidError("ordered quantity must be greater than 0")
	// ErrReceivedQtyIsNegative is returned when a receipt would decrease an item's received quantity.
	ErrReceivedQtyIsNegative = errs.NewValueIsInvalidError("received quantity cannot be negative")
	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")
)

// Item is a product line on a stock transfer. The ordered quantity is fixed at
// creation; the received quantity starts at zero and only ever grows as
// receipts are recorded. Received quantity is deliberately not capped at the
// ordered quantity: over-receipt is recorded as delivered.
type Item struct {
	id           kernel.UUID
	productID    kernel.UUID
	orderedQty   int
	receivedQty  int
	evidenceRefs []string

	guard guard.ConstructorGuard
}

// NewItem creates a fresh transfer item with no received quantity.
// The ordered quantity must be strictly positive.
func NewItem(id kernel.UUID, productID kernel.UUID, orderedQty int) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if orderedQty <= 0 {
		return nil, ErrOrderedQtyIsInvalid
	}

	return &Item{
		id:         id,
		productID:  productID,
		orderedQty: orderedQty,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs a transfer item from persistent storage,
// including received progress and associated evidence references.
func RestoreItem(
	id kernel.UUID,
	productID kernel.UUID,
	orderedQty int,
	receivedQty int,
	evidenceRefs []string,
) (*Item, error) {
	item, err := NewItem(id, productID, orderedQty)
	if err != nil {
		return nil, err
	}
	if receivedQty < 0 {
		return nil, ErrReceivedQtyIsNegative
	}

	item.receivedQty = receivedQty
	item.evidenceRefs = append(item.evidenceRefs, evidenceRefs...)
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the product this line moves.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// OrderedQty returns the quantity requested at creation.
func (i *Item) OrderedQty() int {
	return i.orderedQty
}

// ReceivedQty returns the total quantity received so far.
func (i *Item) ReceivedQty() int {
	return i.receivedQty
}

// EvidenceRefs returns the opaque evidence identifiers associated with
// receipts for this item. The core stores them without interpretation.
func (i *Item) EvidenceRefs() []string {
	refs := make([]string, len(i.evidenceRefs))
	copy(refs, i.evidenceRefs)
	return refs
}

// IsShort reports whether the item still has quantity outstanding.
func (i *Item) IsShort() bool {
	return i.receivedQty < i.orderedQty
}

// ApplyReceipt records qty units as received and associates any evidence
// references from the receiving side. A zero qty is legal — a receipt line can
// carry only evidence — but the received quantity can never decrease.
func (i *Item) ApplyReceipt(qty int, evidenceRefs []string) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d would decrease received quantity", qty),
		)
	}

	i.receivedQty += qty
	i.evidenceRefs = append(i.evidenceRefs, evidenceRefs...)
	return nil
}
