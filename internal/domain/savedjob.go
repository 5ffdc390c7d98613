package domain

import (
	"context"

	"github.com/google/uuid"
)

// SavedJobSet is a true set of (subject, job) pairs. Save and Unsave are
// idempotent: a duplicate save and an unsave of an absent pair are both
// successful no-ops, absorbed by the store's uniqueness semantics rather
// than detected by the caller.
type SavedJobSet interface {
	Save(ctx context.Context, subjectID, jobID uuid.UUID) error
	Unsave(ctx context.Context, subjectID, jobID uuid.UUID) error
	IsSaved(ctx context.Context, subjectID, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error)
}
