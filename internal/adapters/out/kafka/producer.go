// Package kafka publishes transfer lifecycle events to a Kafka topic after
// the owning database transaction has committed. Publishing is best-effort:
// delivery problems are logged and never fail the business operation that
// produced the event.
package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer wraps an async kafka writer behind a buffered inbox. Callers hand
// messages to the inbox and return immediately; a single goroutine drains it
// and writes to the broker.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	logger  *slog.Logger
}

// NewProducer creates a producer for the given brokers and topic. buf sizes
// the inbox; a full inbox drops new events rather than blocking the caller.
func NewProducer(brokers []string, topic string, buf int, logger *slog.Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
		logger:  logger.With("component", "kafka_producer"),
	}
}

// Start launches the drain goroutine. On context cancellation the buffered
// messages are flushed before the writer closes. The inbox itself is never
// closed, so late Publish calls during shutdown are dropped, not panics.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer func() {
			_ = p.w.Close()
			close(p.closeCh)
		}()

		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.logger.Error("failed to publish event",
			"key", string(m.Key),
			"error", err,
		)
	}
}

// Publish hands a message to the inbox without blocking. Events offered to a
// full inbox are dropped and logged.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}

	select {
	case <-p.closeCh:
		p.logger.Warn("event dropped, producer is closed", "key", string(key))
	case p.inbox <- m:
	default:
		p.logger.Warn("event dropped, publish inbox is full", "key", string(key))
	}
}

// WaitClosed blocks until the drain goroutine has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
