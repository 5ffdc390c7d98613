package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire/internal/domain"
)

func TestHandleSession(t *testing.T) {
	seekerID := uuid.New()
	codec := &mockCodec{sessions: map[string]domain.Session{
		"seeker-token": seekerSession(seekerID),
	}}
	srv := newTestServer(t, &mockAppService{}, withCodec(codec))

	req := withBearer(httptest.NewRequest(http.MethodGet, "/api/session", nil), "seeker-token")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subjectId":"`+seekerID.String()+`"`)
	assert.Contains(t, rec.Body.String(), `"role":"JobSeeker"`)
}

func TestHandleSession_NoToken(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(srv, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
