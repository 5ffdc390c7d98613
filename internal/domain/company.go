package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Company is owned by exactly one employer subject. Ownership never
// transfers; Company.OwnerID transitively gates every job and application
// mutation beneath it.
type Company struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Industry  string
	Location  string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyDraft carries the caller-supplied fields for create/update.
type CompanyDraft struct {
	Name     string
	Industry string
	Location string
	Website  string
}

type CompanyRepository interface {
	GetByID(ctx context.Context, companyID uuid.UUID) (*Company, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*Company, error)
	// Create fails with ErrCompanyExists if the owner already has a company
	// (unique owner_id constraint).
	Create(ctx context.Context, ownerID uuid.UUID, draft CompanyDraft) (*Company, error)
	Update(ctx context.Context, companyID uuid.UUID, draft CompanyDraft) (*Company, error)
}
