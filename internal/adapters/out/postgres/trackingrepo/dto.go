// Package trackingrepo persists consignment tracking jobs in the queue_jobs
// table consumed by the background worker.
package trackingrepo

import (
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/core/ports"

	"github.com/google/uuid"
)

// JobDTO represents one queued tracking job.
type JobDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type           string    `gorm:"index"`
	TransferID     uuid.UUID `gorm:"type:uuid;index"`
	ConsignmentRef string
	Status         string `gorm:"index"`
	Priority       int
	Attempts       int
	CreatedAt      time.Time
}

// TableName specifies the database table name for tracking jobs.
func (JobDTO) TableName() string {
	return "queue_jobs"
}

func fromPort(job ports.TrackingJob) JobDTO {
	return JobDTO{
		ID:             job.ID.Bytes(),
		Type:           job.Type,
		TransferID:     job.TransferID.Bytes(),
		ConsignmentRef: job.ConsignmentRef,
		Status:         job.Status,
		Priority:       job.Priority,
		Attempts:       job.Attempts,
		CreatedAt:      job.CreatedAt,
	}
}

func toPort(dto JobDTO) (ports.TrackingJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.TrackingJob{}, err
	}
	transferID, err := kernel.UUIDFromBytes(dto.TransferID[:])
	if err != nil {
		return ports.TrackingJob{}, err
	}

	return ports.TrackingJob{
		ID:             id,
		Type:           dto.Type,
		TransferID:     transferID,
		ConsignmentRef: dto.ConsignmentRef,
		Status:         dto.Status,
		Priority:       dto.Priority,
		Attempts:       dto.Attempts,
		CreatedAt:      dto.CreatedAt,
	}, nil
}
