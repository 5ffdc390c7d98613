package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hirewire/hirewire/internal/domain"
	"github.com/hirewire/hirewire/internal/metrics"
)

// Service orchestrates the access-controlled use cases. All methods take the
// authenticated subject explicitly; nothing is read from ambient state.
type Service struct {
	companies    domain.CompanyRepository
	jobs         domain.JobRepository
	applications domain.ApplicationRepository
	saved        domain.SavedJobSet
	profiles     domain.ProfileRepository
	files        domain.FileStore
	logger       *slog.Logger
}

func NewService(
	companies domain.CompanyRepository,
	jobs domain.JobRepository,
	applications domain.ApplicationRepository,
	saved domain.SavedJobSet,
	profiles domain.ProfileRepository,
	files domain.FileStore,
	logger *slog.Logger,
) *Service {
	return &Service{
		companies:    companies,
		jobs:         jobs,
		applications: applications,
		saved:        saved,
		profiles:     profiles,
		files:        files,
		logger:       logger,
	}
}

// ---- companies ----

func (s *Service) CreateCompany(ctx context.Context, subject domain.Subject, draft domain.CompanyDraft) (*domain.Company, error) {
	if subject.Role != domain.RoleEmployer {
		return nil, domain.ErrRoleNotAllowed
	}
	return s.companies.Create(ctx, subject.ID, draft)
}

func (s *Service) UpdateCompany(ctx context.Context, subject domain.Subject, companyID uuid.UUID, draft domain.CompanyDraft) (*domain.Company, error) {
	if _, err := s.companyForUpdate(ctx, subject, companyID); err != nil {
		return nil, err
	}
	return s.companies.Update(ctx, companyID, draft)
}

func (s *Service) GetCompany(ctx context.Context, companyID uuid.UUID) (*domain.Company, error) {
	return s.companies.GetByID(ctx, companyID)
}

// MyCompany returns the subject's own company, for the employer dashboard.
func (s *Service) MyCompany(ctx context.Context, subject domain.Subject) (*domain.Company, error) {
	if subject.Role != domain.RoleEmployer {
		return nil, domain.ErrRoleNotAllowed
	}
	return s.companies.GetByOwner(ctx, subject.ID)
}

// ---- jobs ----

func (s *Service) CreateJob(ctx context.Context, subject domain.Subject, draft domain.JobDraftInput) (*domain.Job, error) {
	if subject.Role != domain.RoleEmployer {
		return nil, domain.ErrRoleNotAllowed
	}
	company, err := s.companies.GetByOwner(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	return s.jobs.Create(ctx, company.ID, draft)
}

func (s *Service) UpdateJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error) {
	if _, err := s.jobForMutation(ctx, subject, jobID); err != nil {
		return nil, err
	}
	return s.jobs.Update(ctx, jobID, draft)
}

func (s *Service) DeleteJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error {
	if _, err := s.jobForMutation(ctx, subject, jobID); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, jobID)
}

func (s *Service) GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, jobID)
}

// ---- apply flow ----

// ApplyRequest carries everything the apply flow needs. Upload is consulted
// only when Choice is ResumeFromUpload.
type ApplyRequest struct {
	JobID       uuid.UUID
	Choice      domain.ResumeChoice
	Upload      *domain.ResumeUpload
	CoverLetter string
}

// Apply runs the full submission: role gate, job openness, duplicate
// pre-check, resume resolution, then the insert. The insert is the
// authoritative duplicate check; the pre-check only spares an upload when
// the duplicate is already visible. A resume uploaded for an attempt that
// then loses the duplicate race stays in the file store unattached.
func (s *Service) Apply(ctx context.Context, subject domain.Subject, req ApplyRequest) (*domain.Application, error) {
	if subject.Role != domain.RoleSeeker {
		return nil, domain.ErrRoleNotAllowed
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !job.Open() {
		return nil, domain.ErrJobNotOpen
	}

	live, err := s.applications.HasLive(ctx, req.JobID, subject.ID)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, domain.ErrDuplicateApplication
	}

	ref, err := s.resolveResume(ctx, subject, req)
	if err != nil {
		return nil, err
	}

	application, err := s.applications.Create(ctx, domain.ApplicationDraft{
		JobID:       req.JobID,
		ApplicantID: subject.ID,
		ResumeRef:   ref,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return nil, err
	}

	metrics.ApplicationsCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "application submitted",
		"application_id", application.ID,
		"job_id", application.JobID,
	)
	return application, nil
}

func (s *Service) resolveResume(ctx context.Context, subject domain.Subject, req ApplyRequest) (domain.ResumeRef, error) {
	switch req.Choice {
	case domain.ResumeFromProfile:
		ref, err := s.profiles.GetResumeRef(ctx, subject.ID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			return "", domain.ErrMissingResume
		}
		if err != nil {
			return "", err
		}
		return ref, nil

	case domain.ResumeFromUpload:
		if req.Upload == nil {
			return "", domain.ErrMissingResume
		}
		ref, err := s.files.Store(ctx, *req.Upload)
		if err != nil {
			return "", fmt.Errorf("storing resume: %w", err)
		}
		return ref, nil

	default:
		return "", domain.ErrMissingResume
	}
}

// SaveProfileResume stores an uploaded resume and pins it to the seeker's
// profile, replacing any previous one. Applications created earlier keep
// the reference they were submitted with.
func (s *Service) SaveProfileResume(ctx context.Context, subject domain.Subject, upload *domain.ResumeUpload) (domain.ResumeRef, error) {
	if subject.Role != domain.RoleSeeker {
		return "", domain.ErrRoleNotAllowed
	}
	if upload == nil {
		return "", domain.ErrMissingResume
	}

	ref, err := s.files.Store(ctx, *upload)
	if err != nil {
		return "", fmt.Errorf("storing resume: %w", err)
	}
	if err := s.profiles.SetResumeRef(ctx, subject.ID, ref); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "profile resume updated", "subject_id", subject.ID)
	return ref, nil
}

// ---- status lifecycle ----

// Transition moves an application to target on behalf of subject. A nil
// version means "the version the caller just read here", which downgrades
// the check to last-write-wins for that single call; concurrent writers
// still collide on the repository's version match.
func (s *Service) Transition(ctx context.Context, subject domain.Subject, applicationID uuid.UUID, target domain.ApplicationStatus, note *string, version *int) (*domain.Application, error) {
	var application *domain.Application
	var err error

	if target.EmployerDriven() {
		application, err = s.applicationForEmployer(ctx, subject, applicationID)
	} else {
		application, err = s.applicationForApplicant(ctx, subject, applicationID)
	}
	if err != nil {
		s.countTransition(target, "denied")
		return nil, err
	}

	if !application.CanTransition(target) {
		s.countTransition(target, "invalid")
		return nil, domain.ErrInvalidTransition
	}

	expected := application.Version
	if version != nil {
		expected = *version
	}

	updated, err := s.applications.UpdateStatus(ctx, applicationID, target, note, expected)
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			s.countTransition(target, "conflict")
		}
		return nil, err
	}

	s.countTransition(target, "ok")
	s.logger.InfoContext(ctx, "application status changed",
		"application_id", updated.ID,
		"status", string(updated.Status),
	)
	return updated, nil
}

// Withdraw is the applicant-side exit. It always acts on the state the
// applicant just observed, so it carries the fetched version through.
func (s *Service) Withdraw(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error) {
	application, err := s.applicationForApplicant(ctx, subject, applicationID)
	if err != nil {
		s.countTransition(domain.StatusWithdrawn, "denied")
		return nil, err
	}
	if !application.CanTransition(domain.StatusWithdrawn) {
		s.countTransition(domain.StatusWithdrawn, "invalid")
		return nil, domain.ErrInvalidTransition
	}

	updated, err := s.applications.UpdateStatus(ctx, applicationID, domain.StatusWithdrawn, nil, application.Version)
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			s.countTransition(domain.StatusWithdrawn, "conflict")
		}
		return nil, err
	}

	s.countTransition(domain.StatusWithdrawn, "ok")
	return updated, nil
}

func (s *Service) countTransition(target domain.ApplicationStatus, outcome string) {
	metrics.TransitionsTotal.WithLabelValues(string(target), outcome).Inc()
}

// ---- application views ----

func (s *Service) GetApplication(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantID == subject.ID {
		return application, nil
	}
	if _, err := s.applicationForEmployer(ctx, subject, applicationID); err != nil {
		return nil, domain.ErrApplicationNotFound
	}
	return application, nil
}

func (s *Service) MyApplications(ctx context.Context, subject domain.Subject) ([]*domain.Application, error) {
	if subject.Role != domain.RoleSeeker {
		return nil, domain.ErrRoleNotAllowed
	}
	return s.applications.ListByApplicant(ctx, subject.ID)
}

// ApplicationsForJob lists a job's applications for its owning employer.
func (s *Service) ApplicationsForJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) ([]*domain.Application, error) {
	if _, err := s.jobForMutation(ctx, subject, jobID); err != nil {
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}

// ResumeURL resolves an application's resume to a fetchable URL for the
// applicant or the owning employer.
func (s *Service) ResumeURL(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (string, error) {
	application, err := s.GetApplication(ctx, subject, applicationID)
	if err != nil {
		return "", err
	}
	url, err := s.files.Resolve(ctx, application.ResumeRef)
	if err != nil {
		return "", fmt.Errorf("resolving resume: %w", err)
	}
	return url, nil
}

// ---- saved jobs ----

func (s *Service) SaveJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error {
	if subject.Role != domain.RoleSeeker {
		return domain.ErrRoleNotAllowed
	}
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	return s.saved.Save(ctx, subject.ID, jobID)
}

func (s *Service) UnsaveJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error {
	if subject.Role != domain.RoleSeeker {
		return domain.ErrRoleNotAllowed
	}
	return s.saved.Unsave(ctx, subject.ID, jobID)
}

func (s *Service) IsJobSaved(ctx context.Context, subject domain.Subject, jobID uuid.UUID) (bool, error) {
	if subject.Role != domain.RoleSeeker {
		return false, domain.ErrRoleNotAllowed
	}
	return s.saved.IsSaved(ctx, subject.ID, jobID)
}

func (s *Service) SavedJobs(ctx context.Context, subject domain.Subject) ([]uuid.UUID, error) {
	if subject.Role != domain.RoleSeeker {
		return nil, domain.ErrRoleNotAllowed
	}
	return s.saved.List(ctx, subject.ID)
}
