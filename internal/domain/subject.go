package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which actions a subject may attempt. The string values are
// the wire names the identity provider embeds in session tokens.
type Role string

const (
	RoleSeeker   Role = "JobSeeker"
	RoleEmployer Role = "Employer"
	RoleAdmin    Role = "Admin"
)

// ParseRole validates a role string from an untrusted source.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// Subject is the acting principal: identity and role, immutable for the
// lifetime of a session.
type Subject struct {
	ID   uuid.UUID
	Role Role
}

// Session is verified proof of identity and role for a token's validity
// window. Sessions are never mutated; they are decoded fresh per request.
type Session struct {
	Subject   Subject
	IssuedAt  time.Time
	ExpiresAt time.Time
}
