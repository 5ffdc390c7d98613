package domain

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ResumeRef is an opaque token identifying a stored resume file. It comes
// either from the applicant's profile or from a fresh upload at apply time;
// this core never inspects its contents.
type ResumeRef string

// ResumeChoice selects how the apply flow resolves the resume to attach.
type ResumeChoice string

const (
	ResumeFromProfile ResumeChoice = "saved"
	ResumeFromUpload  ResumeChoice = "new"
)

// ResumeUpload is a caller-supplied file destined for the external file
// storage collaborator. Accepted types and the size cap are enforced by
// that collaborator, not here.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// FileStore is the external resume storage collaborator.
type FileStore interface {
	Store(ctx context.Context, upload ResumeUpload) (ResumeRef, error)
	Resolve(ctx context.Context, ref ResumeRef) (string, error)
}

// ProfileRepository holds the seeker's profile-level resume reference, the
// one the apply flow attaches when the caller picks ResumeFromProfile.
type ProfileRepository interface {
	// GetResumeRef returns the profile-level resume reference, or
	// ErrProfileNotFound when the subject has no profile or no stored resume.
	GetResumeRef(ctx context.Context, subjectID uuid.UUID) (ResumeRef, error)
	// SetResumeRef stores or replaces the profile-level resume reference.
	SetResumeRef(ctx context.Context, subjectID uuid.UUID, ref ResumeRef) error
}
