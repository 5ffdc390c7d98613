package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hirewire/hirewire/internal/domain"
)

// Action names a mutation the authorizer can rule on.
type Action string

const (
	ActionCompanyCreate       Action = "company:create"
	ActionCompanyUpdate       Action = "company:update"
	ActionJobCreate           Action = "job:create"
	ActionJobUpdate           Action = "job:update"
	ActionJobDelete           Action = "job:delete"
	ActionApplicationStatus   Action = "application:status"
	ActionApplicationWithdraw Action = "application:withdraw"
	ActionSavedJobToggle      Action = "savedjob:toggle"
)

// Authorization rules are evaluated against current store state, never a
// cache. Denials deliberately collapse "belongs to someone else" and "does
// not exist" into the same not-found sentinel so that a denied caller can
// never confirm the existence of another subject's resource. Wrong-role
// denials (which leak nothing) keep their own sentinel so callers can render
// the right message.

// companyForUpdate returns the company iff the subject owns it.
func (s *Service) companyForUpdate(ctx context.Context, subject domain.Subject, companyID uuid.UUID) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != subject.ID {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

// jobForMutation returns the job iff the subject owns the company it
// belongs to.
func (s *Service) jobForMutation(ctx context.Context, subject domain.Subject, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetByID(ctx, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != subject.ID {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

// applicationForEmployer returns the application iff the subject owns the
// company whose job it targets. An applicant probing their own application
// through an employer action gets a role denial instead; their knowledge of
// the resource is not a leak.
func (s *Service) applicationForEmployer(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.GetByID(ctx, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID == subject.ID {
		return application, nil
	}
	if application.ApplicantID == subject.ID {
		return nil, domain.ErrRoleNotAllowed
	}
	return nil, domain.ErrApplicationNotFound
}

// applicationForApplicant returns the application iff the subject is its
// applicant.
func (s *Service) applicationForApplicant(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantID != subject.ID {
		return nil, domain.ErrApplicationNotFound
	}
	return application, nil
}

// Authorize decides whether the subject may perform action on the resource,
// without performing it. It backs the authorize-action operation of the
// caller-facing surface; the mutation paths use the underlying helpers
// directly so they rule on the same fetch they act on.
func (s *Service) Authorize(ctx context.Context, subject domain.Subject, action Action, resourceID uuid.UUID) error {
	switch action {
	case ActionCompanyCreate:
		if subject.Role != domain.RoleEmployer {
			return domain.ErrRoleNotAllowed
		}
		_, err := s.companies.GetByOwner(ctx, subject.ID)
		if err == nil {
			return domain.ErrCompanyExists
		}
		if errors.Is(err, domain.ErrCompanyNotFound) {
			return nil
		}
		return err

	case ActionCompanyUpdate:
		_, err := s.companyForUpdate(ctx, subject, resourceID)
		return err

	case ActionJobCreate:
		if subject.Role != domain.RoleEmployer {
			return domain.ErrRoleNotAllowed
		}
		_, err := s.companies.GetByOwner(ctx, subject.ID)
		return err

	case ActionJobUpdate, ActionJobDelete:
		_, err := s.jobForMutation(ctx, subject, resourceID)
		return err

	case ActionApplicationStatus:
		_, err := s.applicationForEmployer(ctx, subject, resourceID)
		return err

	case ActionApplicationWithdraw:
		_, err := s.applicationForApplicant(ctx, subject, resourceID)
		return err

	case ActionSavedJobToggle:
		if subject.Role != domain.RoleSeeker {
			return domain.ErrRoleNotAllowed
		}
		return nil

	default:
		return domain.ErrRoleNotAllowed
	}
}
