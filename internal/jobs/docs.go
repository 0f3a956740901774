// Package jobs provides scheduled background tasks for the stock transfer
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required around dispatched transfers.
//
// # Available Jobs
//
// 1. ConsignmentTrackingJob - Runs every 30 seconds to poll the external
// system for the delivery progress of booked consignments
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(trackConsignmentsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The tracking job uses the cron expression "*/30 * * * * *", running every
// 30 seconds. Consignment confirmation is not latency-sensitive; the carrier
// updates its side on a human timescale.
//
// # Error Handling
//
// A failed tracking pass is logged and retried on the next tick. Per-job
// polling errors are handled inside the command handler and never abort the
// whole pass.
package jobs
