package commands

import (
	"context"
	"log/slog"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/ports"
)

// CancelTransferCommandHandler cancels an undispatched transfer and releases
// the expected stock reserved at the destination on creation.
type CancelTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	events     ports.TransferEventPublisher
	logger     *slog.Logger
}

// NewCancelTransferCommandHandler creates a handler for cancellation operations.
func NewCancelTransferCommandHandler(
	uowFactory TransferUoWFactory,
	events ports.TransferEventPublisher,
	logger *slog.Logger,
) CancelTransferCommandHandler {
	return CancelTransferCommandHandler{
		uowFactory: uowFactory,
		events:     events,
		logger:     logger.With("component", "cancel_transfer"),
	}
}

// Handle processes the cancellation command.
func (h *CancelTransferCommandHandler) Handle(ctx context.Context, cmd CancelTransferCommand) error {
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

	if err = aggregate.ValidateCancel(); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	// Release the expectation created on draft.
	ledger := uow.InventoryLedger()
	destination := aggregate.DestinationLocation()
	for _, item := range aggregate.Items() {
		if err = ledger.AdjustExpectedStock(ctx, item.ProductID(), destination, -item.OrderedQty()); err != nil {
			h.logFailure(ctx, cmd.TransferID(), err)
			return err
		}
	}

	if err = aggregate.CancelWithReason(cmd.Reason()); err != nil {
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

	h.events.PublishTransferCancelled(ctx, aggregate.ID())
	h.logger.InfoContext(ctx, "stock transfer cancelled",
		"transfer_id", aggregate.ID().String(),
	)
	return nil
}

func (h *CancelTransferCommandHandler) logFailure(ctx context.Context, id kernel.UUID, err error) {
	h.logger.ErrorContext(ctx, "failed to cancel stock transfer",
		"transfer_id", id.String(),
		"error", err,
	)
}
