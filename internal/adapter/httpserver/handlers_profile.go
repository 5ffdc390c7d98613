package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/domain"
	apperrors "github.com/hirewire/hirewire/internal/platform/errors"
)

// handleSaveProfileResume replaces the seeker's stored resume. The multipart
// form carries a single "resume" file.
func (s *Server) handleSaveProfileResume(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("resume")
	if err != nil {
		return apperrors.ValidationError("resume file is required")
	}
	file, err := header.Open()
	if err != nil {
		return apperrors.ValidationError("could not read uploaded resume")
	}

	upload := &domain.ResumeUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}

	ref, err := s.app.SaveProfileResume(c.Request().Context(), session.Subject, upload)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, map[string]string{"resumeRef": string(ref)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
