package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sessionResponse struct {
	SubjectID string    `json:"subjectId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleSession echoes the verified session back to the caller. The guard
// already rejected anything unauthenticated.
func (s *Server) handleSession(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	resp := sessionResponse{
		SubjectID: session.Subject.ID.String(),
		Role:      string(session.Subject.Role),
		ExpiresAt: session.ExpiresAt,
	}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
