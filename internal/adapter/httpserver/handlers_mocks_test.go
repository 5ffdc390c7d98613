package httpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/app"
	"github.com/hirewire/hirewire/internal/domain"
	"github.com/hirewire/hirewire/internal/platform/config"
)

// --- Mock implementations ---

type mockAppService struct {
	createCompanyFn      func(ctx context.Context, subject domain.Subject, draft domain.CompanyDraft) (*domain.Company, error)
	updateCompanyFn      func(ctx context.Context, subject domain.Subject, companyID uuid.UUID, draft domain.CompanyDraft) (*domain.Company, error)
	getCompanyFn         func(ctx context.Context, companyID uuid.UUID) (*domain.Company, error)
	myCompanyFn          func(ctx context.Context, subject domain.Subject) (*domain.Company, error)
	createJobFn          func(ctx context.Context, subject domain.Subject, draft domain.JobDraftInput) (*domain.Job, error)
	updateJobFn          func(ctx context.Context, subject domain.Subject, jobID uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error)
	deleteJobFn          func(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error
	getJobFn             func(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)
	applyFn              func(ctx context.Context, subject domain.Subject, req app.ApplyRequest) (*domain.Application, error)
	transitionFn         func(ctx context.Context, subject domain.Subject, applicationID uuid.UUID, target domain.ApplicationStatus, note *string, version *int) (*domain.Application, error)
	withdrawFn           func(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error)
	getApplicationFn     func(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error)
	myApplicationsFn     func(ctx context.Context, subject domain.Subject) ([]*domain.Application, error)
	applicationsForJobFn func(ctx context.Context, subject domain.Subject, jobID uuid.UUID) ([]*domain.Application, error)
	resumeURLFn          func(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (string, error)
	saveProfileResumeFn  func(ctx context.Context, subject domain.Subject, upload *domain.ResumeUpload) (domain.ResumeRef, error)
	saveJobFn            func(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error
	unsaveJobFn          func(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error
	isJobSavedFn         func(ctx context.Context, subject domain.Subject, jobID uuid.UUID) (bool, error)
	savedJobsFn          func(ctx context.Context, subject domain.Subject) ([]uuid.UUID, error)
}

func (m *mockAppService) CreateCompany(ctx context.Context, subject domain.Subject, draft domain.CompanyDraft) (*domain.Company, error) {
	if m.createCompanyFn != nil {
		return m.createCompanyFn(ctx, subject, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) UpdateCompany(ctx context.Context, subject domain.Subject, companyID uuid.UUID, draft domain.CompanyDraft) (*domain.Company, error) {
	if m.updateCompanyFn != nil {
		return m.updateCompanyFn(ctx, subject, companyID, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) GetCompany(ctx context.Context, companyID uuid.UUID) (*domain.Company, error) {
	if m.getCompanyFn != nil {
		return m.getCompanyFn(ctx, companyID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) MyCompany(ctx context.Context, subject domain.Subject) (*domain.Company, error) {
	if m.myCompanyFn != nil {
		return m.myCompanyFn(ctx, subject)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) CreateJob(ctx context.Context, subject domain.Subject, draft domain.JobDraftInput) (*domain.Job, error) {
	if m.createJobFn != nil {
		return m.createJobFn(ctx, subject, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) UpdateJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error) {
	if m.updateJobFn != nil {
		return m.updateJobFn(ctx, subject, jobID, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) DeleteJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error {
	if m.deleteJobFn != nil {
		return m.deleteJobFn(ctx, subject, jobID)
	}
	return errors.New("not implemented")
}

func (m *mockAppService) GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	if m.getJobFn != nil {
		return m.getJobFn(ctx, jobID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Apply(ctx context.Context, subject domain.Subject, req app.ApplyRequest) (*domain.Application, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, subject, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Transition(ctx context.Context, subject domain.Subject, applicationID uuid.UUID, target domain.ApplicationStatus, note *string, version *int) (*domain.Application, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, subject, applicationID, target, note, version)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) Withdraw(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error) {
	if m.withdrawFn != nil {
		return m.withdrawFn(ctx, subject, applicationID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) GetApplication(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error) {
	if m.getApplicationFn != nil {
		return m.getApplicationFn(ctx, subject, applicationID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) MyApplications(ctx context.Context, subject domain.Subject) ([]*domain.Application, error) {
	if m.myApplicationsFn != nil {
		return m.myApplicationsFn(ctx, subject)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) ApplicationsForJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) ([]*domain.Application, error) {
	if m.applicationsForJobFn != nil {
		return m.applicationsForJobFn(ctx, subject, jobID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAppService) ResumeURL(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (string, error) {
	if m.resumeURLFn != nil {
		return m.resumeURLFn(ctx, subject, applicationID)
	}
	return "", errors.New("not implemented")
}

func (m *mockAppService) SaveProfileResume(ctx context.Context, subject domain.Subject, upload *domain.ResumeUpload) (domain.ResumeRef, error) {
	if m.saveProfileResumeFn != nil {
		return m.saveProfileResumeFn(ctx, subject, upload)
	}
	return "", errors.New("not implemented")
}

func (m *mockAppService) SaveJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error {
	if m.saveJobFn != nil {
		return m.saveJobFn(ctx, subject, jobID)
	}
	return errors.New("not implemented")
}

func (m *mockAppService) UnsaveJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error {
	if m.unsaveJobFn != nil {
		return m.unsaveJobFn(ctx, subject, jobID)
	}
	return errors.New("not implemented")
}

func (m *mockAppService) IsJobSaved(ctx context.Context, subject domain.Subject, jobID uuid.UUID) (bool, error) {
	if m.isJobSavedFn != nil {
		return m.isJobSavedFn(ctx, subject, jobID)
	}
	return false, errors.New("not implemented")
}

func (m *mockAppService) SavedJobs(ctx context.Context, subject domain.Subject) ([]uuid.UUID, error) {
	if m.savedJobsFn != nil {
		return m.savedJobsFn(ctx, subject)
	}
	return nil, errors.New("not implemented")
}

// mockCodec maps raw token strings to sessions. Unknown tokens fail to
// decode, same as an expired or tampered token would.
type mockCodec struct {
	sessions map[string]domain.Session
}

func (m *mockCodec) Decode(raw string) (domain.Session, error) {
	session, ok := m.sessions[raw]
	if !ok {
		return domain.Session{}, errors.New("token verification failed")
	}
	return session, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	srv := &Server{
		echo:   echo.New(),
		config: &config.Config{Port: "0", APIRatePerSecond: 1000, APIRateBurst: 1000},
		app:    app,
		codec:  &mockCodec{},
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return srv
}

func withCodec(codec sessionDecoder) func(*Server) {
	return func(s *Server) {
		s.codec = codec
	}
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

// callHandler wraps a handler with the error middleware, matching production behavior.
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}
