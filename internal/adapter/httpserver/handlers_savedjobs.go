package httpserver

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/hirewire/hirewire/internal/platform/errors"
)

func (s *Server) handleSaveJob(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("jobID"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("jobID", c.Param("jobID"))
	}

	if err := s.app.SaveJob(c.Request().Context(), session.Subject, jobID); err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]bool{"saved": true}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUnsaveJob(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("jobID"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("jobID", c.Param("jobID"))
	}

	if err := s.app.UnsaveJob(c.Request().Context(), session.Subject, jobID); err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]bool{"saved": false}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleIsJobSaved(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Param("jobID"))
	if err != nil {
		return apperrors.ValidationError("invalid job ID").WithField("jobID", c.Param("jobID"))
	}

	saved, err := s.app.IsJobSaved(c.Request().Context(), session.Subject, jobID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]bool{"saved": saved}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSavedJobs(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	jobIDs, err := s.app.SavedJobs(c.Request().Context(), session.Subject)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(jobIDs))
	for _, id := range jobIDs {
		ids = append(ids, id.String())
	}
	if err := c.JSON(http.StatusOK, map[string][]string{"jobIds": ids}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
