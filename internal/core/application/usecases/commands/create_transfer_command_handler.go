package commands

import (
	"context"
	"log/slog"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
)

// CreateTransferCommandHandler handles the business logic for transfer creation.
// Persists the transfer in Draft status and reserves destination capacity by
// incrementing expected stock for every requested line, all in one transaction.
//
// Example:
//
//	handler := NewCreateTransferCommandHandler(uowFactory, logger)
//	cmd, _ := NewCreateTransferCommand(transferID, source, destination, items, dueDate, "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("transfer creation failed: %w", err)
//	}
//	// Transfer is now in Draft status awaiting dispatch
type CreateTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	logger     *slog.Logger
}

// NewCreateTransferCommandHandler creates a handler for transfer creation operations.
func NewCreateTransferCommandHandler(uowFactory TransferUoWFactory, logger *slog.Logger) CreateTransferCommandHandler {
	return CreateTransferCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "create_transfer"),
	}
}

// Handle processes the transfer creation command.
// Creates the transfer in Draft status and increments destination expected
// stock per item; either everything is persisted or nothing is.
func (h *CreateTransferCommandHandler) Handle(ctx context.Context, cmd CreateTransferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]*transfer.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		item, err := transfer.NewItem(kernel.NewUUID(), input.ProductID, input.Quantity)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	aggregate, err := transfer.NewTransfer(
		cmd.TransferID(),
		cmd.SourceLocation(),
		cmd.DestinationLocation(),
		cmd.ExpectedDate(),
		cmd.Notes(),
		items,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TransferRepository().Add(ctx, aggregate); err != nil {
		h.logFailure(ctx, aggregate.ID(), err)
		return err
	}

	ledger := uow.InventoryLedger()
	for _, item := range aggregate.Items() {
		if err = ledger.AdjustExpectedStock(
			ctx, item.ProductID(), aggregate.DestinationLocation(), item.OrderedQty(),
		); err != nil {
			h.logFailure(ctx, aggregate.ID(), err)
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		h.logFailure(ctx, aggregate.ID(), err)
		return err
	}

	h.logger.InfoContext(ctx, "stock transfer created",
		"transfer_id", aggregate.ID().String(),
		"source_location", aggregate.SourceLocation().String(),
		"destination_location", aggregate.DestinationLocation().String(),
		"item_count", len(aggregate.Items()),
	)
	return nil
}

func (h *CreateTransferCommandHandler) logFailure(ctx context.Context, id kernel.UUID, err error) {
	h.logger.ErrorContext(ctx, "failed to create stock transfer",
		"transfer_id", id.String(),
		"error", err,
	)
}
