package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{UnauthenticatedError("no session"), http.StatusUnauthorized},
		{ForbiddenError("not yours"), http.StatusForbidden},
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("gone"), http.StatusNotFound},
		{ConflictError("stale"), http.StatusConflict},
		{InvalidTransitionError("terminal"), http.StatusUnprocessableEntity},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ExternalError("upstream", nil), http.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), "type %s", tt.err.Type)
	}
}

func TestForbiddenAndNotFoundShareResponseShape(t *testing.T) {
	// The caller-visible shape must not let a denied caller distinguish
	// "exists but not yours" from "does not exist"; handlers achieve that
	// by emitting NotFound in both cases, and the response shape is the
	// only thing a client sees.
	nf := NotFoundError("application not found").ToResponse()
	nf2 := NotFoundError("application not found").ToResponse()
	assert.Equal(t, nf, nf2)
}

func TestAsStructuredError(t *testing.T) {
	orig := ConflictError("stale version").WithField("application_id", "abc")
	got := AsStructuredError(orig)
	assert.Same(t, orig, got)

	wrapped := AsStructuredError(errors.New("plain"))
	assert.Equal(t, TypeInternal, wrapped.Type)

	assert.Nil(t, AsStructuredError(nil))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("pg down")
	err := InternalError("query failed", cause)
	assert.ErrorIs(t, err, cause)
}
