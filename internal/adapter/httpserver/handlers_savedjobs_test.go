package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire/internal/domain"
)

func TestHandleSaveJob(t *testing.T) {
	jobID := uuid.New()
	svc := &mockAppService{
		saveJobFn: func(_ context.Context, subject domain.Subject, id uuid.UUID) error {
			assert.Equal(t, domain.RoleSeeker, subject.Role)
			assert.Equal(t, jobID, id)
			return nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodPost, "/api/saved-jobs/"+jobID.String(), nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"saved":true}`, rec.Body.String())
}

func TestHandleSaveJob_UnknownJob(t *testing.T) {
	svc := &mockAppService{
		saveJobFn: func(_ context.Context, _ domain.Subject, _ uuid.UUID) error {
			return domain.ErrJobNotFound
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodPost, "/api/saved-jobs/"+uuid.NewString(), nil), "seeker-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSaveJob_BadID(t *testing.T) {
	srv := guardTestServer(t, &mockAppService{})

	req := withCookie(httptest.NewRequest(http.MethodPost, "/api/saved-jobs/not-a-uuid", nil), "seeker-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUnsaveJob(t *testing.T) {
	jobID := uuid.New()
	svc := &mockAppService{
		unsaveJobFn: func(_ context.Context, _ domain.Subject, id uuid.UUID) error {
			assert.Equal(t, jobID, id)
			return nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodDelete, "/api/saved-jobs/"+jobID.String(), nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"saved":false}`, rec.Body.String())
}

func TestHandleIsJobSaved(t *testing.T) {
	svc := &mockAppService{
		isJobSavedFn: func(_ context.Context, _ domain.Subject, _ uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodGet, "/api/saved-jobs/"+uuid.NewString()+"/check", nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"saved":true}`, rec.Body.String())
}

func TestHandleSavedJobs(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	svc := &mockAppService{
		savedJobsFn: func(_ context.Context, _ domain.Subject) ([]uuid.UUID, error) {
			return []uuid.UUID{first, second}, nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodGet, "/api/saved-jobs", nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), first.String())
	assert.Contains(t, rec.Body.String(), second.String())
}

func TestHandleSavedJobs_EmptySetIsAnEmptyList(t *testing.T) {
	svc := &mockAppService{
		savedJobsFn: func(_ context.Context, _ domain.Subject) ([]uuid.UUID, error) {
			return nil, nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodGet, "/api/saved-jobs", nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"jobIds":[]}`, rec.Body.String())
}

func TestHandleSaveJob_WrongRole(t *testing.T) {
	svc := &mockAppService{
		saveJobFn: func(_ context.Context, _ domain.Subject, _ uuid.UUID) error {
			return domain.ErrRoleNotAllowed
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodPost, "/api/saved-jobs/"+uuid.NewString(), nil), "employer-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
