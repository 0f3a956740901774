package commands

import (
	"errors"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrCancelTransferCommandIsNotConstructed = errors.New(
		"CancelTransferCommand must be created via NewCancelTransferCommand constructor",
	)
)

// CancelTransferCommand represents a request to cancel a transfer that has
// not been dispatched yet. The reason is optional; when present it is
// appended to the transfer notes.
type CancelTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewCancelTransferCommand creates a command to cancel a transfer.
func NewCancelTransferCommand(transferID kernel.UUID, reason string) (CancelTransferCommand, error) {
	cmd := CancelTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTransferID(transferID); err != nil {
		return CancelTransferCommand{}, err
	}
	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelTransferCommand) Validate() error {
	return c.guard.Validate(ErrCancelTransferCommandIsNotConstructed)
}

// TransferID returns the identifier of the transfer being cancelled.
func (c CancelTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// Reason returns the optional cancellation reason.
func (c CancelTransferCommand) Reason() string {
	return c.reason
}

func (c *CancelTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}
	c.transferID = transferID
	return nil
}
