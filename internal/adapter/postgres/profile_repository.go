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

// ProfileRepo implements domain.ProfileRepository backed by PostgreSQL.
// A profile row exists only once the seeker has stored a resume.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) GetResumeRef(ctx context.Context, subjectID uuid.UUID) (domain.ResumeRef, error) {
	var ref domain.ResumeRef
	err := r.pool.QueryRow(ctx,
		`SELECT resume_ref FROM seeker_profiles WHERE subject_id = $1`, subjectID).Scan(&ref)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get profile resume: %w", err)
	}
	return ref, nil
}

func (r *ProfileRepo) SetResumeRef(ctx context.Context, subjectID uuid.UUID, ref domain.ResumeRef) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO seeker_profiles (subject_id, resume_ref)
		VALUES ($1, $2)
		ON CONFLICT (subject_id)
		DO UPDATE SET resume_ref = EXCLUDED.resume_ref, updated_at = NOW()
	`, subjectID, ref)
	if err != nil {
		return fmt.Errorf("failed to set profile resume: %w", err)
	}
	return nil
}
