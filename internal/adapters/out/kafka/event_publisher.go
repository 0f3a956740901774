package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"stocktransfer/internal/core/domain/model/kernel"
)

// Event types carried on the transfer events topic.
const (
	EventTransferSent      = "transfer.sent"
	EventTransferReceived  = "transfer.received"
	EventTransferCancelled = "transfer.cancelled"
)

// transferEvent is the wire format of one lifecycle event. Messages are keyed
// by transfer id so consumers see one transfer's events in order.
type transferEvent struct {
	Type           string    `json:"type"`
	TransferID     string    `json:"transfer_id"`
	ConsignmentRef string    `json:"consignment_reference,omitempty"`
	FullyReceived  *bool     `json:"fully_received,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// publisher is the producer-side abstraction TransferEventPublisher needs.
type publisher interface {
	Publish(key, value []byte, headers ...kafka.Header)
}

// TransferEventPublisher announces transfer lifecycle changes on Kafka.
// It implements ports.TransferEventPublisher; all methods are fire-and-forget.
type TransferEventPublisher struct {
	producer publisher
	logger   *slog.Logger
}

// NewTransferEventPublisher creates a publisher on top of an async producer.
func NewTransferEventPublisher(producer *Producer, logger *slog.Logger) *TransferEventPublisher {
	return &TransferEventPublisher{
		producer: producer,
		logger:   logger.With("component", "transfer_events"),
	}
}

// PublishTransferSent announces a dispatched transfer.
func (p *TransferEventPublisher) PublishTransferSent(ctx context.Context, transferID kernel.UUID, consignmentRef string) {
	p.publish(ctx, transferEvent{
		Type:           EventTransferSent,
		TransferID:     transferID.String(),
		ConsignmentRef: consignmentRef,
		OccurredAt:     time.Now().UTC(),
	})
}

// PublishTransferReceived announces a recorded receipt.
func (p *TransferEventPublisher) PublishTransferReceived(ctx context.Context, transferID kernel.UUID, fullyReceived bool) {
	p.publish(ctx, transferEvent{
		Type:          EventTransferReceived,
		TransferID:    transferID.String(),
		FullyReceived: &fullyReceived,
		OccurredAt:    time.Now().UTC(),
	})
}

// PublishTransferCancelled announces a cancelled transfer.
func (p *TransferEventPublisher) PublishTransferCancelled(ctx context.Context, transferID kernel.UUID) {
	p.publish(ctx, transferEvent{
		Type:       EventTransferCancelled,
		TransferID: transferID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *TransferEventPublisher) publish(ctx context.Context, event transferEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode event",
			"type", event.Type,
			"transfer_id", event.TransferID,
			"error", err,
		)
		return
	}

	p.producer.Publish([]byte(event.TransferID), value)
	p.logger.DebugContext(ctx, "event published",
		"type", event.Type,
		"transfer_id", event.TransferID,
	)
}
