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

type companyRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
	Website  string `json:"website"`
}

type companyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry,omitempty"`
	Location  string    `json:"location,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCompanyResponse(company *domain.Company) companyResponse {
	return companyResponse{
		ID:        company.ID.String(),
		Name:      company.Name,
		Industry:  company.Industry,
		Location:  company.Location,
		Website:   company.Website,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}

func bindCompanyDraft(c echo.Context) (domain.CompanyDraft, error) {
	var body companyRequest
	if err := c.Bind(&body); err != nil {
		return domain.CompanyDraft{}, apperrors.ValidationError("invalid request body")
	}
	if body.Name == "" {
		return domain.CompanyDraft{}, apperrors.ValidationError("company name is required")
	}
	return domain.CompanyDraft{
		Name:     body.Name,
		Industry: body.Industry,
		Location: body.Location,
		Website:  body.Website,
	}, nil
}

func (s *Server) handleCreateCompany(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	draft, err := bindCompanyDraft(c)
	if err != nil {
		return err
	}

	company, err := s.app.CreateCompany(c.Request().Context(), session.Subject, draft)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, toCompanyResponse(company)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateCompany(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid company ID").WithField("id", c.Param("id"))
	}

	draft, err := bindCompanyDraft(c)
	if err != nil {
		return err
	}

	company, err := s.app.UpdateCompany(c.Request().Context(), session.Subject, companyID, draft)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toCompanyResponse(company)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetCompany(c echo.Context) error {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ValidationError("invalid company ID").WithField("id", c.Param("id"))
	}

	company, err := s.app.GetCompany(c.Request().Context(), companyID)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toCompanyResponse(company)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleMyCompany(c echo.Context) error {
	session, err := sessionFromContext(c)
	if err != nil {
		return err
	}

	company, err := s.app.MyCompany(c.Request().Context(), session.Subject)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, toCompanyResponse(company)); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
