package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/app"
	"github.com/hirewire/hirewire/internal/domain"
	apperrors "github.com/hirewire/hirewire/internal/platform/errors"
)

const maxEmployerNoteLength = 2000

type applicationResponse struct {
	ID           string    `json:"id"`
	JobID        string    `json:"jobId"`
	ApplicantID  string    `json:"applicantId"`
	Status       string    `json:"status"`
	CoverLetter  string    `json:"coverLetter,omitempty"`
	EmployerNote string    `json:"employerNote,omitempty"`
	Version      int       `json:"version"`
	AppliedAt    time.Time `json:"appliedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:           a.ID.String(),
		JobID:        a.JobID.String(),
		ApplicantID:  a.ApplicantID.String(),
		Status:       string(a.Status),
		CoverLetter:  a.CoverLetter,
		EmployerNote: a.EmployerNote,
		Version:      a.Version,
		AppliedAt:    a.AppliedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toApplicationListResponse(applications []*domain.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(applications))
	for _, a := range applications {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

// handleApply accepts either JSON (stored-resume applies) or multipart form
// data (fresh upload). The multipart form carries jobId, resumeChoice and
// coverLetter fields next to the resume file.
func (s *Server) handleApply(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	req, err := parseApplyRequest(c)
	if err != nil {
		return err
	}

	application, err := s.app.Apply(c.Request().Context(), session.Subject, req)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toApplicationResponse(application)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type applyJSONRequest struct {
	JobID        string `json:"jobId"`
	ResumeChoice string `json:"resumeChoice"`
	CoverLetter  string `json:"coverLetter"`
}

func parseApplyRequest(c echo.Context) (app.ApplyRequest, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return parseApplyMultipart(c)
	}

	var body applyJSONRequest
	if err := c.Bind(&body); err != nil {
		return app.ApplyRequest{}, apperrors.ValidationError("invalid request body")
	}

	jobID, err := uuid.Parse(body.JobID)
	if err != nil {
		return app.ApplyRequest{}, apperrors.ValidationError("invalid job ID").WithField("jobId", body.JobID)
	}

	choice, err := parseResumeChoice(body.ResumeChoice)
	if err != nil {
		return app.ApplyRequest{}, err
	}

	return app.ApplyRequest{
		JobID:       jobID,
		Choice:      choice,
		CoverLetter: body.CoverLetter,
	}, nil
}

func parseApplyMultipart(c echo.Context) (app.ApplyRequest, error) {
	jobID, err := uuid.Parse(c.FormValue("jobId"))
	if err != nil {
		return app.ApplyRequest{}, apperrors.ValidationError("invalid job ID").WithField("jobId", c.FormValue("jobId"))
	}

	choice, err := parseResumeChoice(c.FormValue("resumeChoice"))
	if err != nil {
		return app.ApplyRequest{}, err
	}

	req := app.ApplyRequest{
		JobID:       jobID,
		Choice:      choice,
		CoverLetter: c.FormValue("coverLetter"),
	}

	if choice == domain.ResumeFromUpload {
		header, err := c.FormFile("resume")
		if err != nil {
			// Missing file with the upload choice is the coordinator's
			// MissingResume case; let the service decide.
			return req, nil
		}
		file, err := header.Open()
		if err != nil {
			return app.ApplyRequest{}, apperrors.ValidationError("could not read uploaded resume")
		}
		req.Upload = &domain.ResumeUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		}
	}

	return req, nil
}

func parseResumeChoice(raw string) (domain.ResumeChoice, error) {
	switch domain.ResumeChoice(raw) {
	case domain.ResumeFromProfile, domain.ResumeFromUpload:
		return domain.ResumeChoice(raw), nil
	default:
		return "", apperrors.ValidationError("resumeChoice must be \"saved\" or \"new\"").WithField("resumeChoice", raw)
	}
}

type transitionRequest struct {
	Status       string  `json:"status"`
	EmployerNote *string `json:"employerNote"`
	Version      *int    `json:"version"`
}

func (s *Server) handleTransition(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid application ID").WithField("id", c.Param("id"))
	}

	var body transitionRequest
	if err := c.Bind(&body); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	target, err := domain.ParseApplicationStatus(body.Status)
	if err != nil {
		return apperrors.ValidationError("unknown status").WithField("status", body.Status)
	}
	if body.Version == nil {
		return apperrors.ValidationError("version is required")
	}
	if body.EmployerNote != nil && len(*body.EmployerNote) > maxEmployerNoteLength {
		return apperrors.ValidationError("employer note too long").WithField("max_length", maxEmployerNoteLength)
	}

	application, err := s.app.Transition(c.Request().Context(), session.Subject, applicationID, target, body.EmployerNote, body.Version)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toApplicationResponse(application)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleWithdraw(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid application ID").WithField("id", c.Param("id"))
	}

	application, err := s.app.Withdraw(c.Request().Context(), session.Subject, applicationID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toApplicationResponse(application)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetApplication(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid application ID").WithField("id", c.Param("id"))
	}

	application, err := s.app.GetApplication(c.Request().Context(), session.Subject, applicationID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toApplicationResponse(application)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleMyApplications(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	applications, err := s.app.MyApplications(c.Request().Context(), session.Subject)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toApplicationListResponse(applications)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleApplicationsForJob(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("jobID"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("jobID", c.Param("jobID"))
	}

	applications, err := s.app.ApplicationsForJob(c.Request().Context(), session.Subject, jobID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toApplicationListResponse(applications)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleResumeURL(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid application ID").WithField("id", c.Param("id"))
	}

	url, err := s.app.ResumeURL(c.Request().Context(), session.Subject, applicationID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]string{"url": url}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
