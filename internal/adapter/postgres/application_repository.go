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

// applicationColumns must match the Scan order in scanApplication.
const applicationColumns = `id, job_id, applicant_id, resume_ref, cover_letter, status, employer_note, version, applied_at, updated_at`

// terminalStatuses mirrors the predicate of the partial unique index on
// (job_id, applicant_id); HasLive must use the same set.
const terminalStatuses = `('Offered', 'Rejected', 'Withdrawn')`

// ApplicationRepo implements domain.ApplicationRepository backed by
// PostgreSQL. Status writes are guarded by the version column so concurrent
// transitions cannot silently overwrite each other.
type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.ResumeRef, &a.CoverLetter,
		&a.Status, &a.EmployerNote, &a.Version, &a.AppliedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID uuid.UUID) (*domain.Application, error) {
	application, err := scanApplication(r.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, applicationID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	return application, nil
}

func (r *ApplicationRepo) Create(ctx context.Context, draft domain.ApplicationDraft) (*domain.Application, error) {
	application, err := scanApplication(r.pool.QueryRow(ctx, `
		INSERT INTO applications (job_id, applicant_id, resume_ref, cover_letter)
		VALUES ($1, $2, $3, $4)
		RETURNING `+applicationColumns+`
	`, draft.JobID, draft.ApplicantID, draft.ResumeRef, draft.CoverLetter))
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicateApplication
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return application, nil
}

// UpdateStatus applies the transition only when the stored version still
// matches expectedVersion. Distinguishing "gone" from "stale" takes a second
// lookup, done only on the failure path.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status domain.ApplicationStatus, note *string, expectedVersion int) (*domain.Application, error) {
	application, err := scanApplication(r.pool.QueryRow(ctx, `
		UPDATE applications
		SET status = $1,
		    employer_note = COALESCE($2, employer_note),
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $3 AND version = $4
		RETURNING `+applicationColumns+`
	`, status, note, applicationID, expectedVersion))
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if probeErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, applicationID,
		).Scan(&exists); probeErr != nil {
			return nil, fmt.Errorf("failed to check application existence: %w", probeErr)
		}
		if exists {
			return nil, domain.ErrVersionConflict
		}
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return application, nil
}

func (r *ApplicationRepo) HasLive(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var live bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE job_id = $1 AND applicant_id = $2 AND status NOT IN `+terminalStatuses+`
		)
	`, jobID, applicantID).Scan(&live)
	if err != nil {
		return false, fmt.Errorf("failed to check live application: %w", err)
	}
	return live, nil
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*domain.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY applied_at DESC`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by applicant: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*domain.Application, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications by job: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]*domain.Application, error) {
	var applications []*domain.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return applications, nil
}
