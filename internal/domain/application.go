package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusSubmitted   ApplicationStatus = "Submitted"
	StatusReviewed    ApplicationStatus = "Reviewed"
	StatusShortlisted ApplicationStatus = "Shortlisted"
	StatusInterview   ApplicationStatus = "Interview"
	StatusOffered     ApplicationStatus = "Offered"
	StatusRejected    ApplicationStatus = "Rejected"
	StatusWithdrawn   ApplicationStatus = "Withdrawn"
)

// statusRank orders the forward chain. Rejected and Withdrawn are side
// exits, not chain members.
var statusRank = map[ApplicationStatus]int{
	StatusSubmitted:   0,
	StatusReviewed:    1,
	StatusShortlisted: 2,
	StatusInterview:   3,
	StatusOffered:     4,
}

// ParseApplicationStatus validates a status string from an untrusted source.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case StatusSubmitted, StatusReviewed, StatusShortlisted,
		StatusInterview, StatusOffered, StatusRejected, StatusWithdrawn:
		return ApplicationStatus(s), nil
	default:
		return "", ErrInvalidTransition
	}
}

// Terminal reports whether no transition may leave this status.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusOffered || s == StatusRejected || s == StatusWithdrawn
}

// EmployerDriven reports whether the owning employer is the actor that may
// move an application into this status. Withdrawn belongs to the applicant;
// Submitted only exists at creation.
func (s ApplicationStatus) EmployerDriven() bool {
	return s != StatusWithdrawn && s != StatusSubmitted
}

// Application is created by a seeker against a job. Status (plus the
// employer note) is the only field mutated post-creation; records are never
// deleted, only transitioned to a terminal status. Version is the
// optimistic-concurrency token: every status write checks it and bumps it.
type Application struct {
	ID           uuid.UUID
	JobID        uuid.UUID
	ApplicantID  uuid.UUID
	ResumeRef    ResumeRef
	CoverLetter  string
	Status       ApplicationStatus
	EmployerNote string
	Version      int
	AppliedAt    time.Time
	UpdatedAt    time.Time
}

// CanTransition reports whether moving to target is legal, ignoring who the
// actor is. The graph is directed: forward jumps along
// Submitted → Reviewed → Shortlisted → Interview → Offered are allowed
// (including skips), Rejected and Withdrawn exit from any non-terminal
// state, and nothing leaves a terminal state.
func (a *Application) CanTransition(target ApplicationStatus) bool {
	if a.Status.Terminal() {
		return false
	}
	switch target {
	case StatusRejected, StatusWithdrawn:
		return true
	case StatusSubmitted:
		return false
	default:
		from, okFrom := statusRank[a.Status]
		to, okTo := statusRank[target]
		return okFrom && okTo && to > from
	}
}

// ApplicationDraft carries the fields fixed at creation time.
type ApplicationDraft struct {
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	ResumeRef   ResumeRef
	CoverLetter string
}

type ApplicationRepository interface {
	GetByID(ctx context.Context, applicationID uuid.UUID) (*Application, error)
	// Create inserts in StatusSubmitted. Fails with ErrDuplicateApplication
	// when a live (non-terminal) application already exists for the
	// (job, applicant) pair, enforced by a partial unique index so that
	// concurrent duplicates cannot both land.
	Create(ctx context.Context, draft ApplicationDraft) (*Application, error)
	// UpdateStatus applies a status transition only if the stored version
	// matches expectedVersion; a stale version fails with
	// ErrVersionConflict, a missing row with ErrApplicationNotFound.
	// A nil note leaves the employer note untouched.
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status ApplicationStatus, note *string, expectedVersion int) (*Application, error)
	HasLive(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*Application, error)
}
