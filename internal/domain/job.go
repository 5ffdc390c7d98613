package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobDraft   JobStatus = "Draft"
	JobActive  JobStatus = "Active"
	JobPaused  JobStatus = "Paused"
	JobClosed  JobStatus = "Closed"
	JobExpired JobStatus = "Expired"
)

// Job belongs to exactly one company; mutable only by that company's owner.
type Job struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Title     string
	Location  string
	Status    JobStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the job accepts new applications.
func (j *Job) Open() bool {
	return j.Status == JobActive
}

type JobDraftInput struct {
	Title    string
	Location string
	Status   JobStatus
}

type JobRepository interface {
	GetByID(ctx context.Context, jobID uuid.UUID) (*Job, error)
	Create(ctx context.Context, companyID uuid.UUID, draft JobDraftInput) (*Job, error)
	Update(ctx context.Context, jobID uuid.UUID, draft JobDraftInput) (*Job, error)
	Delete(ctx context.Context, jobID uuid.UUID) error
}
