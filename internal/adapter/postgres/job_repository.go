package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewire/hirewire/internal/domain"
)

// jobColumns must match the Scan order in scanJob.
const jobColumns = `id, company_id, title, location, status, created_at, updated_at`

// JobRepo implements domain.JobRepository backed by PostgreSQL.
type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.Title, &j.Location, &j.Status,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return job, nil
}

func (r *JobRepo) Create(ctx context.Context, companyID uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error) {
	status := draft.Status
	if status == "" {
		status = domain.JobDraft
	}
	job, err := scanJob(r.pool.QueryRow(ctx, `
		INSERT INTO jobs (company_id, title, location, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns+`
	`, companyID, draft.Title, draft.Location, status))
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

func (r *JobRepo) Update(ctx context.Context, jobID uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error) {
	job, err := scanJob(r.pool.QueryRow(ctx, `
		UPDATE jobs
		SET title = $1, location = $2, status = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+jobColumns+`
	`, draft.Title, draft.Location, draft.Status, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

func (r *JobRepo) Delete(ctx context.Context, jobID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
