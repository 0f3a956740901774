package ports

import (
	"context"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
)

// TrackingJobTypeConsignment is the job type written for every successful send.
const TrackingJobTypeConsignment = "consignment.track"

// TrackingJobPriorityDefault is the queue priority for consignment tracking.
const TrackingJobPriorityDefault = 5

// Tracking job lifecycle states.
const (
	TrackingJobPending   = "pending"
	TrackingJobCompleted = "completed"
	TrackingJobFailed    = "failed"
)

// TrackingJob is one queued follow-up for a dispatched transfer. Jobs are
// enqueued inside the send transaction and consumed out-of-process by the
// tracking worker, decoupling transfer completion from the carrier's timeline.
type TrackingJob struct {
	ID             kernel.UUID
	Type           string
	TransferID     kernel.UUID
	ConsignmentRef string
	Status         string
	Priority       int
	Attempts       int
	CreatedAt      time.Time
}

// TrackingQueueRepository persists and serves tracking jobs.
type TrackingQueueRepository interface {
	// Enqueue appends a pending job. Called inside the send transaction so the
	// job exists exactly when the consignment reference does.
	Enqueue(ctx context.Context, job TrackingJob) error

	// GetPending returns up to limit pending jobs ordered by priority then age.
	GetPending(ctx context.Context, limit int) ([]TrackingJob, error)

	// MarkCompleted finishes a job after the consignment reached a state the
	// worker no longer needs to poll.
	MarkCompleted(ctx context.Context, id kernel.UUID) error

	// RecordAttempt increments a job's attempt counter after an unsuccessful
	// poll, leaving it pending for the next worker run.
	RecordAttempt(ctx context.Context, id kernel.UUID) error

	// MarkFailed parks a job that exhausted its attempts.
	MarkFailed(ctx context.Context, id kernel.UUID) error
}
