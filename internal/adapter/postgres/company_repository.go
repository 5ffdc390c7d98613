package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewire/hirewire/internal/domain"
)

// companyColumns must match the Scan order in scanCompany.
const companyColumns = `id, owner_id, name, industry, location, website, created_at, updated_at`

// CompanyRepo implements domain.CompanyRepository backed by PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Industry, &c.Location, &c.Website,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepo) GetByID(ctx context.Context, companyID uuid.UUID) (*domain.Company, error) {
	company, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company by ID: %w", err)
	}
	return company, nil
}

func (r *CompanyRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Company, error) {
	company, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE owner_id = $1`, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company by owner: %w", err)
	}
	return company, nil
}

func (r *CompanyRepo) Create(ctx context.Context, ownerID uuid.UUID, draft domain.CompanyDraft) (*domain.Company, error) {
	company, err := scanCompany(r.pool.QueryRow(ctx, `
		INSERT INTO companies (owner_id, name, industry, location, website)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns+`
	`, ownerID, draft.Name, draft.Industry, draft.Location, draft.Website))
	if isUniqueViolation(err) {
		return nil, domain.ErrCompanyExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

func (r *CompanyRepo) Update(ctx context.Context, companyID uuid.UUID, draft domain.CompanyDraft) (*domain.Company, error) {
	company, err := scanCompany(r.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $1, industry = $2, location = $3, website = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+companyColumns+`
	`, draft.Name, draft.Industry, draft.Location, draft.Website, companyID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
