package domain

import "errors"

var (
	ErrUnknownRole    = errors.New("unknown role")
	ErrRoleNotAllowed = errors.New("role not allowed for this action")

	// Not-found sentinels. Services return these both when a resource does
	// not exist and when it belongs to another subject, so an unauthorized
	// caller cannot distinguish the two cases.
	ErrCompanyNotFound     = errors.New("company not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrProfileNotFound     = errors.New("profile not found")

	ErrCompanyExists        = errors.New("employer already owns a company")
	ErrJobNotOpen           = errors.New("job is not accepting applications")
	ErrDuplicateApplication = errors.New("a live application already exists for this job")
	ErrInvalidTransition    = errors.New("invalid application status transition")
	ErrVersionConflict      = errors.New("application was modified by a concurrent request")
	ErrMissingResume        = errors.New("no resume reference or upload provided")
	ErrUploadRejected       = errors.New("resume upload rejected by file storage")
)
