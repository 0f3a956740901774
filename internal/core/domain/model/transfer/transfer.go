package transfer

import (
	"errors"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/errs"
	"stocktransfer/internal/pkg/guard"
)

// TypeStockTransfer is the type tag persisted on every transfer managed by
// this service. The table also holds other transfer kinds (supplier orders,
// returns) owned by other subsystems; this core only ever reads and writes
// rows carrying this tag.
const TypeStockTransfer = "STOCK_TRANSFER"

// Domain errors for transfer operations.
var (
	// ErrSourceLocationIsRequired is returned when a transfer is created without a source location.
	ErrSourceLocationIsRequired = errs.NewValueIsRequiredError("source_location")
	// ErrDestinationLocationIsRequired is returned when a transfer is created without a destination location.
	ErrDestinationLocationIsRequired = errs.NewValueIsRequiredError("destination_location")
	// ErrLocationsMustDiffer is returned when source and destination refer to the same location.
	ErrLocationsMustDiffer = errs.NewValueIsInvalidError("source and destination locations must be different")
	// ErrItemsAreRequired is returned when a transfer is created with no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrExpectedDateIsRequired is returned when a transfer is created without an expected date.
	ErrExpectedDateIsRequired = errs.NewValueIsRequiredError("expected_date")
	// ErrConsignmentRefIsRequired is returned when a transfer is marked sent without an external reference.
	ErrConsignmentRefIsRequired = errs.NewValueIsRequiredError("consignment_reference")
	// ErrTransferIsNotConstructed is returned when using an improperly initialized Transfer.
	ErrTransferIsNotConstructed = errors.New("Transfer must be created via NewTransfer or RestoreTransfer constructor")
)

// Transfer is the aggregate root for a stock movement request between two
// inventory locations. It owns its items and enforces the lifecycle state
// machine; all stock mutations driven by a transfer happen in the application
// layer inside the same transaction as the status change.
//
// Invariants:
//   - Source and destination locations are valid and differ
//   - At least one item, each with a fixed positive ordered quantity
//   - Status transitions follow the Draft -> Sent -> (Partially)Received flow,
//     with cancellation only before dispatch
//   - The consignment reference is set exactly once, on dispatch
//   - Received and Cancelled transfers never change again
type Transfer struct {
	id                  kernel.UUID
	status              Status
	sourceLocation      kernel.UUID
	destinationLocation kernel.UUID
	expectedDate        time.Time
	notes               string
	consignmentRef      string
	items               []*Item

	createdAt  time.Time
	sentAt     *time.Time
	receivedAt *time.Time
	updatedAt  time.Time

	// version is the optimistic concurrency token checked on every update.
	version int

	guard guard.ConstructorGuard
}

// NewTransfer creates a transfer in Draft status. Validation runs in the
// documented order — source, destination, distinctness, items, expected date —
// and stops at the first violated rule so callers always see the earliest
// problem with their request.
func NewTransfer(
	id kernel.UUID,
	sourceLocation kernel.UUID,
	destinationLocation kernel.UUID,
	expectedDate time.Time,
	notes string,
	items []*Item,
) (*Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := sourceLocation.Validate(); err != nil {
		return nil, ErrSourceLocationIsRequired
	}
	if err := destinationLocation.Validate(); err != nil {
		return nil, ErrDestinationLocationIsRequired
	}
	if sourceLocation.IsEqual(destinationLocation) {
		return nil, ErrLocationsMustDiffer
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if expectedDate.IsZero() {
		return nil, ErrExpectedDateIsRequired
	}

	now := time.Now().UTC()
	return &Transfer{
		id:                  id,
		status:              Draft,
		sourceLocation:      sourceLocation,
		destinationLocation: destinationLocation,
		expectedDate:        expectedDate,
		notes:               notes,
		items:               items,
		createdAt:           now,
		updatedAt:           now,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// RestoreTransfer reconstructs a transfer aggregate from persistent storage.
// Unlike NewTransfer it accepts any valid status and preserves timestamps,
// the consignment reference, and the stored version token.
func RestoreTransfer(
	id kernel.UUID,
	status Status,
	sourceLocation kernel.UUID,
	destinationLocation kernel.UUID,
	expectedDate time.Time,
	notes string,
	consignmentRef string,
	items []*Item,
	createdAt time.Time,
	sentAt *time.Time,
	receivedAt *time.Time,
	updatedAt time.Time,
	version int,
) (*Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := sourceLocation.Validate(); err != nil {
		return nil, ErrSourceLocationIsRequired
	}
	if err := destinationLocation.Validate(); err != nil {
		return nil, ErrDestinationLocationIsRequired
	}
	if sourceLocation.IsEqual(destinationLocation) {
		return nil, ErrLocationsMustDiffer
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Transfer{
		id:                  id,
		status:              status,
		sourceLocation:      sourceLocation,
		destinationLocation: destinationLocation,
		expectedDate:        expectedDate,
		notes:               notes,
		consignmentRef:      consignmentRef,
		items:               items,
		createdAt:           createdAt,
		sentAt:              sentAt,
		receivedAt:          receivedAt,
		updatedAt:           updatedAt,
		version:             version,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Transfer was created through a constructor.
func (t *Transfer) Validate() error {
	if t == nil {
		return ErrTransferIsNotConstructed
	}
	return t.guard.Validate(ErrTransferIsNotConstructed)
}

// IsEqual compares two transfers by their unique identifiers.
func (t *Transfer) IsEqual(other *Transfer) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the transfer's unique identifier.
func (t *Transfer) ID() kernel.UUID {
	return t.id
}

// Type returns the transfer's persisted type tag.
func (t *Transfer) Type() string {
	return TypeStockTransfer
}

// Status returns the current lifecycle status.
func (t *Transfer) Status() Status {
	return t.status
}

// SourceLocation returns the location stock moves out of.
func (t *Transfer) SourceLocation() kernel.UUID {
	return t.sourceLocation
}

// DestinationLocation returns the location stock moves into.
func (t *Transfer) DestinationLocation() kernel.UUID {
	return t.destinationLocation
}

// ExpectedDate returns the date the transfer is due at the destination.
func (t *Transfer) ExpectedDate() time.Time {
	return t.expectedDate
}

// Notes returns free-form notes, including any appended cancellation reason.
func (t *Transfer) Notes() string {
	return t.notes
}

// ConsignmentRef returns the external consignment reference, or the empty
// string while the transfer has not been dispatched.
func (t *Transfer) ConsignmentRef() string {
	return t.consignmentRef
}

// Items returns the transfer's product lines.
func (t *Transfer) Items() []*Item {
	return t.items
}

// Item finds a line by its identifier.
func (t *Transfer) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range t.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// CreatedAt returns when the transfer was created.
func (t *Transfer) CreatedAt() time.Time {
	return t.createdAt
}

// SentAt returns when the transfer was dispatched, or nil.
func (t *Transfer) SentAt() *time.Time {
	return t.sentAt
}

// ReceivedAt returns when the transfer became fully received, or nil.
func (t *Transfer) ReceivedAt() *time.Time {
	return t.receivedAt
}

// UpdatedAt returns when the transfer last changed.
func (t *Transfer) UpdatedAt() time.Time {
	return t.updatedAt
}

// Version returns the optimistic concurrency token loaded from storage.
func (t *Transfer) Version() int {
	return t.version
}

// FullyReceived reports whether no item is short of its ordered quantity.
func (t *Transfer) FullyReceived() bool {
	for _, item := range t.items {
		if item.IsShort() {
			return false
		}
	}
	return true
}

// ValidateSend reports whether the transfer may be dispatched.
func (t *Transfer) ValidateSend() error {
	return t.status.ValidateSend()
}

// ValidateReceive reports whether a receipt may be recorded.
func (t *Transfer) ValidateReceive() error {
	return t.status.ValidateReceive()
}

// ValidateCancel reports whether the transfer may be cancelled.
func (t *Transfer) ValidateCancel() error {
	return t.status.ValidateCancel()
}

// MarkSent transitions the transfer to Sent and records the external
// consignment reference. Only legal from Draft, and the reference from the
// booking call is mandatory — a dispatched transfer without one would be
// invisible to the tracking worker.
func (t *Transfer) MarkSent(consignmentRef string) error {
	if consignmentRef == "" {
		return ErrConsignmentRefIsRequired
	}

	newStatus, err := t.status.Send()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.consignmentRef = consignmentRef
	t.sentAt = &now
	t.updatedAt = now
	return nil
}

// ApplyReceipt records a received quantity against one item. The transfer must
// be in a receivable status; the status itself is only advanced afterwards by
// FinalizeReceipt, once every line of the receipt has been applied.
func (t *Transfer) ApplyReceipt(itemID kernel.UUID, qty int, evidenceRefs []string) error {
	if err := t.status.ValidateReceive(); err != nil {
		return err
	}

	item, err := t.Item(itemID)
	if err != nil {
		return err
	}

	if err := item.ApplyReceipt(qty, evidenceRefs); err != nil {
		return err
	}

	t.updatedAt = time.Now().UTC()
	return nil
}

// FinalizeReceipt advances the status after a receipt: Received when no item
// remains short, PartiallyReceived otherwise. The received timestamp is only
// stamped on completion.
func (t *Transfer) FinalizeReceipt() error {
	fullyReceived := t.FullyReceived()

	newStatus, err := t.status.Receive(fullyReceived)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	t.status = newStatus
	t.updatedAt = now
	if fullyReceived {
		t.receivedAt = &now
	}
	return nil
}

// CancelWithReason transitions the transfer to Cancelled and appends the
// reason to its notes. Only legal before dispatch (Draft or Open).
func (t *Transfer) CancelWithReason(reason string) error {
	newStatus, err := t.status.Cancel()
	if err != nil {
		return err
	}

	t.status = newStatus
	if reason != "" {
		t.notes = t.notes + "\n\nCancelled: " + reason
	}
	t.updatedAt = time.Now().UTC()
	return nil
}
