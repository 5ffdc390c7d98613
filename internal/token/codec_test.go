package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire/internal/domain"
)

var testKey = []byte("test-signing-key-0123456789abcdef")

// mint builds a token the way the external identity service does.
func mint(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func baseClaims(subjectID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  subjectID.String(),
		"role": "JobSeeker",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	}
}

func TestDecode_ValidToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	codec := NewCodec(testKey, clock)
	subjectID := uuid.New()

	raw := mint(t, testKey, baseClaims(subjectID, clock.Now()))

	session, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, subjectID, session.Subject.ID)
	assert.Equal(t, domain.RoleSeeker, session.Subject.Role)
	assert.Equal(t, clock.Now().Add(time.Hour).Unix(), session.ExpiresAt.Unix())
	assert.Equal(t, clock.Now().Unix(), session.IssuedAt.Unix())
}

func TestDecode_VendorRoleClaimKey(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := NewCodec(testKey, clock)
	subjectID := uuid.New()

	claims := baseClaims(subjectID, clock.Now())
	delete(claims, "role")
	claims[aspnetRoleClaim] = "Employer"
	raw := mint(t, testKey, claims)

	session, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployer, session.Subject.Role)
}

func TestDecode_ExpiredToken(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	codec := NewCodec(testKey, clock)

	raw := mint(t, testKey, baseClaims(uuid.New(), clock.Now()))
	clock.Advance(2 * time.Hour)

	_, err := codec.Decode(raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestDecode_WrongKey(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := NewCodec(testKey, clock)

	raw := mint(t, []byte("another-key-another-key-another!"), baseClaims(uuid.New(), clock.Now()))

	_, err := codec.Decode(raw)
	assert.ErrorIs(t, err, ErrSignature)
}

func TestDecode_Malformed(t *testing.T) {
	codec := NewCodec(testKey, clockwork.NewFakeClock())

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := codec.Decode(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

func TestDecode_MissingExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := NewCodec(testKey, clock)

	claims := baseClaims(uuid.New(), clock.Now())
	delete(claims, "exp")
	raw := mint(t, testKey, claims)

	_, err := codec.Decode(raw)
	assert.Error(t, err)
}

func TestDecode_UnknownRole(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := NewCodec(testKey, clock)

	claims := baseClaims(uuid.New(), clock.Now())
	claims["role"] = "Superuser"
	raw := mint(t, testKey, claims)

	_, err := codec.Decode(raw)
	assert.ErrorIs(t, err, ErrClaims)
}

func TestDecode_SubjectNotUUID(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := NewCodec(testKey, clock)

	claims := baseClaims(uuid.New(), clock.Now())
	claims["sub"] = "42"
	raw := mint(t, testKey, claims)

	_, err := codec.Decode(raw)
	assert.ErrorIs(t, err, ErrClaims)
}

func TestDecode_RejectsUnsignedAlg(t *testing.T) {
	clock := clockwork.NewFakeClock()
	codec := NewCodec(testKey, clock)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, baseClaims(uuid.New(), clock.Now())).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Decode(unsigned)
	assert.Error(t, err)
}
