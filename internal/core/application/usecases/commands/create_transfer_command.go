package commands

import (
	"errors"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
	"stocktransfer/internal/pkg/errs"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrCreateTransferCommandIsNotConstructed = errors.New(
		"CreateTransferCommand must be created via NewCreateTransferCommand constructor",
	)
)

// TransferItemInput is one requested product line on a creation request.
type TransferItemInput struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateTransferCommand represents a request to create a new stock transfer
// between two locations. Validation runs at construction in the documented
// order — source, destination, distinctness, items, expected date — and stops
// at the first violated rule, so a request that is broken in several ways
// always reports its earliest problem.
//
// Example:
//
//	transferID := kernel.NewUUID()
//	cmd, err := NewCreateTransferCommand(transferID, source, destination,
//	    []TransferItemInput{{ProductID: productID, Quantity: 5}},
//	    time.Now().AddDate(0, 0, 7), "weekly replenishment")
//	if err != nil {
//	    return fmt.Errorf("invalid transfer request: %w", err)
//	}
type CreateTransferCommand struct { //nolint:recvcheck //using for validation
	transferID          kernel.UUID
	sourceLocation      kernel.UUID
	destinationLocation kernel.UUID
	items               []TransferItemInput
	expectedDate        time.Time
	notes               string

	guard guard.ConstructorGuard
}

// NewCreateTransferCommand creates a command to register a new stock transfer.
// Returns the first validation failure in rule order.
func NewCreateTransferCommand(
	transferID kernel.UUID,
	sourceLocation kernel.UUID,
	destinationLocation kernel.UUID,
	items []TransferItemInput,
	expectedDate time.Time,
	notes string,
) (CreateTransferCommand, error) {
	cmd := CreateTransferCommand{
		guard: guard.NewConstructorGuard(),
	}

	// Checks run sequentially, not joined: rule order is part of the contract.
	if err := cmd.setTransferID(transferID); err != nil {
		return CreateTransferCommand{}, err
	}
	if err := cmd.setLocations(sourceLocation, destinationLocation); err != nil {
		return CreateTransferCommand{}, err
	}
	if err := cmd.setItems(items); err != nil {
		return CreateTransferCommand{}, err
	}
	if err := cmd.setExpectedDate(expectedDate); err != nil {
		return CreateTransferCommand{}, err
	}
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTransferCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransferCommandIsNotConstructed)
}

// TransferID returns the identifier assigned to the new transfer.
func (c CreateTransferCommand) TransferID() kernel.UUID {
	return c.transferID
}

// SourceLocation returns the location stock will move out of.
func (c CreateTransferCommand) SourceLocation() kernel.UUID {
	return c.sourceLocation
}

// DestinationLocation returns the location stock will move into.
func (c CreateTransferCommand) DestinationLocation() kernel.UUID {
	return c.destinationLocation
}

// Items returns the requested product lines.
func (c CreateTransferCommand) Items() []TransferItemInput {
	return c.items
}

// ExpectedDate returns the requested arrival date.
func (c CreateTransferCommand) ExpectedDate() time.Time {
	return c.expectedDate
}

// Notes returns free-form notes for the transfer.
func (c CreateTransferCommand) Notes() string {
	return c.notes
}

func (c *CreateTransferCommand) setTransferID(transferID kernel.UUID) error {
	if err := transferID.Validate(); err != nil {
		return err
	}
	c.transferID = transferID
	return nil
}

func (c *CreateTransferCommand) setLocations(source, destination kernel.UUID) error {
	if err := source.Validate(); err != nil {
		return transfer.ErrSourceLocationIsRequired
	}
	if err := destination.Validate(); err != nil {
		return transfer.ErrDestinationLocationIsRequired
	}
	if source.IsEqual(destination) {
		return transfer.ErrLocationsMustDiffer
	}
	c.sourceLocation = source
	c.destinationLocation = destination
	return nil
}

func (c *CreateTransferCommand) setItems(items []TransferItemInput) error {
	if len(items) == 0 {
		return transfer.ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return errs.NewValueIsRequiredError("product_id")
		}
		if item.Quantity <= 0 {
			return transfer.ErrOrderedQtyIsInvalid
		}
	}
	c.items = items
	return nil
}

func (c *CreateTransferCommand) setExpectedDate(expectedDate time.Time) error {
	if expectedDate.IsZero() {
		return transfer.ErrExpectedDateIsRequired
	}
	c.expectedDate = expectedDate
	return nil
}
