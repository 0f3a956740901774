package trackingrepo

import (
	"context"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/ports"
	"stocktransfer/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingQueueRepository implements TrackingQueueRepository using GORM.
type GormTrackingQueueRepository struct {
	db *gorm.DB
}

// NewGormTrackingQueueRepository creates a new GORM tracking queue repository.
func NewGormTrackingQueueRepository(db *gorm.DB) *GormTrackingQueueRepository {
	return &GormTrackingQueueRepository{db: db}
}

// Enqueue appends a pending job.
func (r *GormTrackingQueueRepository) Enqueue(ctx context.Context, job ports.TrackingJob) error {
	if err := job.ID.Validate(); err != nil {
		return err
	}
	if err := job.TransferID.Validate(); err != nil {
		return err
	}

	dto := fromPort(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending returns up to limit pending jobs ordered by priority then age.
func (r *GormTrackingQueueRepository) GetPending(ctx context.Context, limit int) ([]ports.TrackingJob, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", ports.TrackingJobTypeConsignment, ports.TrackingJobPending).
		Order("priority").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]ports.TrackingJob, 0, len(dtos))
	for _, dto := range dtos {
		job, portErr := toPort(dto)
		if portErr != nil {
			return nil, portErr
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// MarkCompleted finishes a job.
func (r *GormTrackingQueueRepository) MarkCompleted(ctx context.Context, id kernel.UUID) error {
	return r.setStatus(ctx, id, ports.TrackingJobCompleted)
}

// RecordAttempt increments a job's attempt counter, leaving it pending.
func (r *GormTrackingQueueRepository) RecordAttempt(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ?", id.Bytes()).
		Update("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tracking job", id.String())
	}

	return nil
}

// MarkFailed parks a job that exhausted its attempts.
func (r *GormTrackingQueueRepository) MarkFailed(ctx context.Context, id kernel.UUID) error {
	return r.setStatus(ctx, id, ports.TrackingJobFailed)
}

func (r *GormTrackingQueueRepository) setStatus(ctx context.Context, id kernel.UUID, status string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ?", id.Bytes()).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tracking job", id.String())
	}

	return nil
}
