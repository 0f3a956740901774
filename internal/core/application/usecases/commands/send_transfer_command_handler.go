package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/domain/model/transfer"
	"stocktransfer/internal/core/ports"
)

// SendTransferCommandHandler handles transfer dispatch. Inside one
// transaction it decrements the source's actual stock, books the consignment
// with the external gateway, persists the returned reference together with
// the Sent status, and enqueues the tracking job. A failure anywhere —
// including the external booking call — rolls back every local change, so a
// stock decrement can never outlive a failed booking.
//
// The booking call deliberately runs while the database transaction is open.
// That keeps dispatch all-or-nothing at the cost of holding the transaction
// across a network call; see the tracking worker for the asynchronous half.
type SendTransferCommandHandler struct {
	uowFactory SendUoWFactory
	gateway    ports.ConsignmentGateway
	events     ports.TransferEventPublisher
	logger     *slog.Logger
}

// NewSendTransferCommandHandler creates a handler for transfer dispatch operations.
func NewSendTransferCommandHandler(
	uowFactory SendUoWFactory,
	gateway ports.ConsignmentGateway,
	events ports.TransferEventPublisher,
	logger *slog.Logger,
) SendTransferCommandHandler {
	return SendTransferCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		events:     events,
		logger:     logger.With("component", "send_transfer"),
	}
}

// Handle processes the dispatch command.
func (h *SendTransferCommandHandler) Handle(ctx context.Context, cmd SendTransferCommand) error {
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

	// State is checked strictly before any mutation.
	if err = aggregate.ValidateSend(); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	// Commit stock out of the source. The decrement is unconditional; the
	// ledger does not verify sufficient stock exists.
	ledger := uow.InventoryLedger()
	for _, item := range aggregate.Items() {
		if err = ledger.AdjustActualStock(
			ctx, item.ProductID(), aggregate.SourceLocation(), -item.OrderedQty(),
		); err != nil {
			h.logFailure(ctx, cmd.TransferID(), err)
			return err
		}
	}

	consignmentRef, err := h.gateway.Book(ctx, buildBookingRequest(aggregate))
	if err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	if err = aggregate.MarkSent(consignmentRef); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	if err = transferRepo.Update(ctx, aggregate); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	job := ports.TrackingJob{
		ID:             kernel.NewUUID(),
		Type:           ports.TrackingJobTypeConsignment,
		TransferID:     aggregate.ID(),
		ConsignmentRef: consignmentRef,
		Status:         ports.TrackingJobPending,
		Priority:       ports.TrackingJobPriorityDefault,
		CreatedAt:      time.Now().UTC(),
	}
	if err = uow.TrackingQueueRepository().Enqueue(ctx, job); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.logFailure(ctx, cmd.TransferID(), err)
		return err
	}

	h.events.PublishTransferSent(ctx, aggregate.ID(), consignmentRef)
	h.logger.InfoContext(ctx, "stock transfer sent",
		"transfer_id", aggregate.ID().String(),
		"consignment_reference", consignmentRef,
	)
	return nil
}

func (h *SendTransferCommandHandler) logFailure(ctx context.Context, id kernel.UUID, err error) {
	h.logger.ErrorContext(ctx, "failed to send stock transfer",
		"transfer_id", id.String(),
		"error", err,
	)
}

func buildBookingRequest(aggregate *transfer.Transfer) ports.BookingRequest {
	items := make([]ports.BookingItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ports.BookingItem{
			ProductID: item.ProductID(),
			Quantity:  item.OrderedQty(),
		})
	}

	return ports.BookingRequest{
		DestinationLocation: aggregate.DestinationLocation(),
		Items:               items,
		DueDate:             aggregate.ExpectedDate(),
		Name:                fmt.Sprintf("Stock Transfer #%s", aggregate.ID()),
	}
}
