// Package token decodes and validates signed session tokens issued by the
// external identity service. Decoding is pure: given the token and the
// verification key it performs no I/O, so callers may verify concurrently
// without locking.
package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/hirewire/hirewire/internal/domain"
)

// aspnetRoleClaim is the claim URI the identity service embeds the role
// under. The codec normalizes it away; nothing outside this package sees it.
const aspnetRoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

var (
	ErrMalformed = errors.New("session token malformed")
	ErrSignature = errors.New("session token signature invalid")
	ErrExpired   = errors.New("session token expired")
	ErrClaims    = errors.New("session token claims invalid")
)

// Codec verifies HMAC-SHA256 session tokens. It holds only the verification
// key and a clock; it never mints tokens.
type Codec struct {
	key    []byte
	parser *jwt.Parser
}

func NewCodec(key []byte, clock clockwork.Clock) *Codec {
	return &Codec{
		key: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithTimeFunc(clock.Now),
			jwt.WithExpirationRequired(),
		),
	}
}

// Decode verifies the token and returns the session it carries. The subject
// id and role inside a verified token are trusted as-is for the remainder
// of request handling; expired or unverifiable tokens fail with a typed
// error and never partially decode.
func (c *Codec) Decode(raw string) (domain.Session, error) {
	claims := jwt.MapClaims{}
	_, err := c.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.Session{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.Session{}, ErrSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.Session{}, ErrMalformed
	default:
		return domain.Session{}, fmt.Errorf("%w: %w", ErrClaims, err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Session{}, fmt.Errorf("%w: missing subject", ErrClaims)
	}
	subjectID, err := uuid.Parse(sub)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: subject is not a UUID", ErrClaims)
	}

	role, err := roleFromClaims(claims)
	if err != nil {
		return domain.Session{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.Session{}, fmt.Errorf("%w: missing expiry", ErrClaims)
	}

	session := domain.Session{
		Subject:   domain.Subject{ID: subjectID, Role: role},
		ExpiresAt: exp.Time,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		session.IssuedAt = iat.Time
	}
	return session, nil
}

func roleFromClaims(claims jwt.MapClaims) (domain.Role, error) {
	raw, ok := claims["role"].(string)
	if !ok {
		raw, ok = claims[aspnetRoleClaim].(string)
	}
	if !ok {
		return "", fmt.Errorf("%w: missing role claim", ErrClaims)
	}

	role, err := domain.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrClaims, raw)
	}
	return role, nil
}
