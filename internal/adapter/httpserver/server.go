// Package httpserver is the echo-based caller-facing surface: the route
// guard, the JSON API, and the health endpoints. Handlers trust the session
// the guard stored in the request context and delegate all authorization to
// the application service.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/app"
	"github.com/hirewire/hirewire/internal/domain"
	"github.com/hirewire/hirewire/internal/platform/config"
)

// appService is the slice of the application layer the handlers consume.
type appService interface {
	CreateCompany(ctx context.Context, subject domain.Subject, draft domain.CompanyDraft) (*domain.Company, error)
	UpdateCompany(ctx context.Context, subject domain.Subject, companyID uuid.UUID, draft domain.CompanyDraft) (*domain.Company, error)
	GetCompany(ctx context.Context, companyID uuid.UUID) (*domain.Company, error)
	MyCompany(ctx context.Context, subject domain.Subject) (*domain.Company, error)

	CreateJob(ctx context.Context, subject domain.Subject, draft domain.JobDraftInput) (*domain.Job, error)
	UpdateJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error)
	DeleteJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error
	GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)

	Apply(ctx context.Context, subject domain.Subject, req app.ApplyRequest) (*domain.Application, error)
	Transition(ctx context.Context, subject domain.Subject, applicationID uuid.UUID, target domain.ApplicationStatus, note *string, version *int) (*domain.Application, error)
	Withdraw(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error)
	GetApplication(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (*domain.Application, error)
	MyApplications(ctx context.Context, subject domain.Subject) ([]*domain.Application, error)
	ApplicationsForJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) ([]*domain.Application, error)
	ResumeURL(ctx context.Context, subject domain.Subject, applicationID uuid.UUID) (string, error)
	SaveProfileResume(ctx context.Context, subject domain.Subject, upload *domain.ResumeUpload) (domain.ResumeRef, error)

	SaveJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error
	UnsaveJob(ctx context.Context, subject domain.Subject, jobID uuid.UUID) error
	IsJobSaved(ctx context.Context, subject domain.Subject, jobID uuid.UUID) (bool, error)
	SavedJobs(ctx context.Context, subject domain.Subject) ([]uuid.UUID, error)
}

// sessionDecoder verifies a raw session token.
type sessionDecoder interface {
	Decode(raw string) (domain.Session, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app   appService
	codec sessionDecoder

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, codec sessionDecoder, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		codec:        codec,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
