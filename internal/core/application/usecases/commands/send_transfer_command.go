package commands

import (
	"errors"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrSendTransferCommandIsNotConstructed = errors.New(
		"SendTransferCommand must be created via NewSendTransferCommand constructor",
	)
)

// SendTransferCommand represents a request to dispatch a draft transfer:
// commit stock out of the source, book the external consignment, and queue
// delivery tracking.
type SendTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID

	guard guard.ConstructorGuard
}

// NewSendTransferCommand creates a command to dispatch a transfer.
func NewSendTransferCommand(transferID kernel.UUID) (SendTransferCommand, error) {
	cmd := SendTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTransferID(transferID); err != nil {
		return SendTransferCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendTransferCommand) Validate() error {
	return c.guard.Validate(ErrSendTransferCommandIsNotConstructed)
}

// TransferID returns the identifier of the transfer to dispatch.
func (c SendTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

func (c *SendTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}
	c.transferID = transferID
	return nil
}
