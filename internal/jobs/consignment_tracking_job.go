package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"stocktransfer/internal/core/application/usecases/commands"
)

// ConsignmentTrackingJob schedules polling passes over the tracking queue.
// Runs every 30 seconds to check whether booked consignments have left the
// supplier.
type ConsignmentTrackingJob struct {
	handler commands.TrackConsignmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewConsignmentTrackingJob creates a job wrapping the tracking command handler.
func NewConsignmentTrackingJob(
	handler commands.TrackConsignmentsCommandHandler,
	logger *slog.Logger,
) *ConsignmentTrackingJob {
	return &ConsignmentTrackingJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "consignment_tracking_job"),
	}
}

// Start begins the tracking job to run every 30 seconds.
func (j *ConsignmentTrackingJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewTrackConsignmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Consignment tracking pass failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consignment tracking job started (running every 30 seconds)")
	return nil
}

// Stop stops the tracking job.
func (j *ConsignmentTrackingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consignment tracking job stopped")
}
