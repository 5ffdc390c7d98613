package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// savedJobsKeyPrefix namespaces one set per subject.
const savedJobsKeyPrefix = "saved_jobs:"

// SavedJobSet implements domain.SavedJobSet on a Redis set per subject.
// SADD and SREM are naturally idempotent, which gives the toggle semantics
// for free: duplicate saves and absent unsaves are successful no-ops.
type SavedJobSet struct {
	rdb *redis.Client
}

func NewSavedJobSet(client *Client) *SavedJobSet {
	return &SavedJobSet{rdb: client.Underlying()}
}

func savedJobsKey(subjectID uuid.UUID) string {
	return savedJobsKeyPrefix + subjectID.String()
}

func (s *SavedJobSet) Save(ctx context.Context, subjectID, jobID uuid.UUID) error {
	if err := s.rdb.SAdd(ctx, savedJobsKey(subjectID), jobID.String()).Err(); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (s *SavedJobSet) Unsave(ctx context.Context, subjectID, jobID uuid.UUID) error {
	if err := s.rdb.SRem(ctx, savedJobsKey(subjectID), jobID.String()).Err(); err != nil {
		return fmt.Errorf("failed to unsave job: %w", err)
	}
	return nil
}

func (s *SavedJobSet) IsSaved(ctx context.Context, subjectID, jobID uuid.UUID) (bool, error) {
	saved, err := s.rdb.SIsMember(ctx, savedJobsKey(subjectID), jobID.String()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check saved job: %w", err)
	}
	return saved, nil
}

func (s *SavedJobSet) List(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error) {
	members, err := s.rdb.SMembers(ctx, savedJobsKey(subjectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list saved jobs: %w", err)
	}

	jobIDs := make([]uuid.UUID, 0, len(members))
	for _, member := range members {
		jobID, err := uuid.Parse(member)
		if err != nil {
			// A malformed member is operator damage; skip it rather than
			// fail the whole listing.
			continue
		}
		jobIDs = append(jobIDs, jobID)
	}
	return jobIDs, nil
}
