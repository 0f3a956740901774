package commands

import (
	"errors"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
	"stocktransfer/internal/pkg/errs"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrReceiveTransferCommandIsNotConstructed = errors.New(
		"ReceiveTransferCommand must be created via NewReceiveTransferCommand constructor",
	)
)

// ReceiptLine is one received quantity reported against a transfer item.
// EvidenceRefs are opaque attachment identifiers kept with the item as-is.
type ReceiptLine struct {
	ItemID       kernel.UUID
	Quantity     int
	EvidenceRefs []string
}

// ReceiveTransferCommand represents goods arriving at the destination for a
// dispatched transfer. A command may cover any subset of the transfer's
// items; the handler decides whether the transfer ends up fully or partially
// received.
type ReceiveTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	lines      []ReceiptLine

	guard guard.ConstructorGuard
}

// NewReceiveTransferCommand creates a command to record a receipt.
func NewReceiveTransferCommand(transferID kernel.UUID, lines []ReceiptLine) (ReceiveTransferCommand, error) {
	cmd := ReceiveTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTransferID(transferID); err != nil {
		return ReceiveTransferCommand{}, err
	}
	if err := cmd.setLines(lines); err != nil {
		return ReceiveTransferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveTransferCommand) Validate() error {
	return c.guard.Validate(ErrReceiveTransferCommandIsNotConstructed)
}

// TransferID returns the identifier of the transfer being received.
func (c ReceiveTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// Lines returns the reported receipt lines.
func (c ReceiveTransferCommand) Lines() []ReceiptLine {
	return c.lines
}

func (c *ReceiveTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}
	c.transferID = transferID
	return nil
}

func (c *ReceiveTransferCommand) setLines(lines []ReceiptLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	for _, line := range lines {
		if err := line.ItemID.Validate(); err != nil {
			return errs.NewValueIsRequiredError("item_id")
		}
		if line.Quantity < 0 {
			return transfer.ErrReceivedQtyIsNegative
		}
	}

	c.lines = lines
	return nil
}
