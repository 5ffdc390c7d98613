package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/domain"
	apperrors "github.com/hirewire/hirewire/internal/platform/errors"
)

type jobRequest struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

type jobResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Title     string    `json:"title"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toJobResponse(job *domain.Job) jobResponse {
	return jobResponse{
		ID:        job.ID.String(),
		CompanyID: job.CompanyID.String(),
		Title:     job.Title,
		Location:  job.Location,
		Status:    string(job.Status),
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

func bindJobDraft(c echo.Context) (domain.JobDraftInput, error) {
	var body jobRequest
	if err := c.Bind(&body); err != nil {
		return domain.JobDraftInput{}, apperrors.ValidationError("invalid request body")
	}
	if body.Title == "" {
		return domain.JobDraftInput{}, apperrors.ValidationError("job title is required")
	}

	draft := domain.JobDraftInput{
		Title:    body.Title,
		Location: body.Location,
	}
	if body.Status != "" {
		switch status := domain.JobStatus(body.Status); status {
		case domain.JobDraft, domain.JobActive, domain.JobPaused, domain.JobClosed, domain.JobExpired:
			draft.Status = status
		default:
			return domain.JobDraftInput{}, apperrors.ValidationError("unknown job status").WithField("status", body.Status)
		}
	}
	return draft, nil
}

func (s *Server) handleCreateJob(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	draft, err := bindJobDraft(c)
	if err != nil {
		return err
	}

	job, err := s.app.CreateJob(c.Request().Context(), session.Subject, draft)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toJobResponse(job)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateJob(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("id", c.Param("id"))
	}

	draft, err := bindJobDraft(c)
	if err != nil {
		return err
	}

	job, err := s.app.UpdateJob(c.Request().Context(), session.Subject, jobID, draft)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toJobResponse(job)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteJob(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("id", c.Param("id"))
	}

	if err := s.app.DeleteJob(c.Request().Context(), session.Subject, jobID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleGetJob(c echo.Context) error {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("id", c.Param("id"))
	}

	job, err := s.app.GetJob(c.Request().Context(), jobID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toJobResponse(job)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
