package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire/internal/domain"
)

func testJob(status domain.JobStatus) *domain.Job {
	now := time.Now()
	return &domain.Job{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Title:     "Backend Engineer",
		Location:  "Remote",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestHandleCreateJob(t *testing.T) {
	job := testJob(domain.JobDraft)
	var gotDraft domain.JobDraftInput
	svc := &mockAppService{
		createJobFn: func(_ context.Context, subject domain.Subject, draft domain.JobDraftInput) (*domain.Job, error) {
			assert.Equal(t, domain.RoleEmployer, subject.Role)
			gotDraft = draft
			return job, nil
		},
	}
	srv := guardTestServer(t, svc)

	body := `{"title":"Backend Engineer","location":"Remote"}`
	req := withCookie(jsonRequest(http.MethodPost, "/api/jobs", body), "employer-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Backend Engineer", gotDraft.Title)
	assert.Equal(t, domain.JobStatus(""), gotDraft.Status)
	assert.Contains(t, rec.Body.String(), `"status":"Draft"`)
}

func TestHandleCreateJob_TitleRequired(t *testing.T) {
	srv := guardTestServer(t, &mockAppService{})

	req := withCookie(jsonRequest(http.MethodPost, "/api/jobs", `{"location":"Remote"}`), "employer-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateJob_UnknownStatus(t *testing.T) {
	srv := guardTestServer(t, &mockAppService{})

	body := `{"title":"Backend Engineer","status":"Archived"}`
	req := withCookie(jsonRequest(http.MethodPost, "/api/jobs", body), "employer-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"validation"`)
}

func TestHandleUpdateJob(t *testing.T) {
	job := testJob(domain.JobActive)
	svc := &mockAppService{
		updateJobFn: func(_ context.Context, _ domain.Subject, id uuid.UUID, draft domain.JobDraftInput) (*domain.Job, error) {
			assert.Equal(t, job.ID, id)
			assert.Equal(t, domain.JobActive, draft.Status)
			return job, nil
		},
	}
	srv := guardTestServer(t, svc)

	body := `{"title":"Backend Engineer","status":"Active"}`
	req := withCookie(jsonRequest(http.MethodPut, "/api/jobs/"+job.ID.String(), body), "employer-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"Active"`)
}

func TestHandleUpdateJob_NotOwnerReadsAsNotFound(t *testing.T) {
	svc := &mockAppService{
		updateJobFn: func(_ context.Context, _ domain.Subject, _ uuid.UUID, _ domain.JobDraftInput) (*domain.Job, error) {
			return nil, domain.ErrJobNotFound
		},
	}
	srv := guardTestServer(t, svc)

	body := `{"title":"Hijacked"}`
	req := withCookie(jsonRequest(http.MethodPut, "/api/jobs/"+uuid.NewString(), body), "employer-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeleteJob(t *testing.T) {
	job := testJob(domain.JobClosed)
	svc := &mockAppService{
		deleteJobFn: func(_ context.Context, _ domain.Subject, id uuid.UUID) error {
			assert.Equal(t, job.ID, id)
			return nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodDelete, "/api/jobs/"+job.ID.String(), nil), "employer-token")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHandleGetJob(t *testing.T) {
	job := testJob(domain.JobActive)
	svc := &mockAppService{
		getJobFn: func(_ context.Context, id uuid.UUID) (*domain.Job, error) {
			assert.Equal(t, job.ID, id)
			return job, nil
		},
	}
	srv := guardTestServer(t, svc)

	req := withCookie(httptest.NewRequest(http.MethodGet, "/api/jobs/"+job.ID.String(), nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Backend Engineer"`)
}
