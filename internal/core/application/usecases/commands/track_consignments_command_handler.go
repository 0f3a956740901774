package commands

import (
	"context"
	"log/slog"
	"strings"

	"stocktransfer/internal/core/ports"
)

const (
	// trackingBatchSize caps how many pending jobs one pass claims.
	trackingBatchSize = 20

	// trackingAttemptLimit parks a job after this many unsuccessful polls.
	trackingAttemptLimit = 10
)

// TrackConsignmentsCommandHandler polls the external system for the delivery
// progress of booked consignments. Jobs complete once the consignment reports
// it left the supplier; until then each pass records another attempt. Queue
// rows are independent, so the handler works directly on the repository
// without a surrounding transaction.
type TrackConsignmentsCommandHandler struct {
	queue   ports.TrackingQueueRepository
	gateway ports.ConsignmentGateway
	logger  *slog.Logger
}

// NewTrackConsignmentsCommandHandler creates a handler for tracking passes.
func NewTrackConsignmentsCommandHandler(
	queue ports.TrackingQueueRepository,
	gateway ports.ConsignmentGateway,
	logger *slog.Logger,
) TrackConsignmentsCommandHandler {
	return TrackConsignmentsCommandHandler{
		queue:   queue,
		gateway: gateway,
		logger:  logger.With("component", "track_consignments"),
	}
}

// Handle runs one tracking pass. A gateway failure on one job does not stop
// the pass; the job keeps its pending status and the next run retries it.
func (h TrackConsignmentsCommandHandler) Handle(ctx context.Context, cmd TrackConsignmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	jobs, err := h.queue.GetPending(ctx, trackingBatchSize)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := h.track(ctx, job); err != nil {
			h.logger.ErrorContext(ctx, "tracking pass job failed",
				"job_id", job.ID.String(),
				"consignment_reference", job.ConsignmentRef,
				"error", err,
			)
		}
	}

	return nil
}

func (h TrackConsignmentsCommandHandler) track(ctx context.Context, job ports.TrackingJob) error {
	status, err := h.gateway.Status(ctx, job.ConsignmentRef)
	if err != nil {
		if job.Attempts+1 >= trackingAttemptLimit {
			h.logger.WarnContext(ctx, "tracking job exhausted its attempts",
				"job_id", job.ID.String(),
				"consignment_reference", job.ConsignmentRef,
				"attempts", job.Attempts+1,
			)
			return h.queue.MarkFailed(ctx, job.ID)
		}
		if recordErr := h.queue.RecordAttempt(ctx, job.ID); recordErr != nil {
			return recordErr
		}
		return err
	}

	if consignmentLeftSupplier(status) {
		h.logger.InfoContext(ctx, "consignment confirmed by carrier",
			"job_id", job.ID.String(),
			"transfer_id", job.TransferID.String(),
			"consignment_reference", job.ConsignmentRef,
			"status", status,
		)
		return h.queue.MarkCompleted(ctx, job.ID)
	}

	return h.queue.RecordAttempt(ctx, job.ID)
}

// consignmentLeftSupplier reports whether the carrier status means no further
// polling is needed.
func consignmentLeftSupplier(status string) bool {
	switch strings.ToUpper(status) {
	case "SENT", "DISPATCHED", "RECEIVED":
		return true
	default:
		return false
	}
}
