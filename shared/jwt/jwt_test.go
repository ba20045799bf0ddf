package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/blogapi/shared/domain"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secretKey = "testJwtKey"
var principal = domain.Principal{Id: "6f1c1b8e-1f7c-4c55-9d3e-6d0f2a0b9f11", Email: "jane@x.com"}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDecodeTokenCorrect(t *testing.T) {
	j := New(secretKey, time.Hour)
	token, err := j.NewToken(principal)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "token must have three segments")

	decoded, err := j.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal, decoded)
}

func TestTokenClaims(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	j := New(secretKey, DefaultTTL).WithClock(fixedClock(issued))
	token, err := j.NewToken(principal)
	require.NoError(t, err)

	var claims Claims
	_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	assert.Equal(t, principal.Id, claims.Uid)
	assert.Equal(t, principal.Email, claims.Email)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(2*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestDecodeTokenExpired(t *testing.T) {
	issued := time.Now()
	token, err := New(secretKey, time.Minute).WithClock(fixedClock(issued)).NewToken(principal)
	require.NoError(t, err)

	t.Run("just before expiry", func(t *testing.T) {
		j := New(secretKey, time.Minute).WithClock(fixedClock(issued.Add(59 * time.Second)))
		_, err := j.DecodeToken(token)
		assert.NoError(t, err)
	})

	t.Run("at expiry", func(t *testing.T) {
		j := New(secretKey, time.Minute).WithClock(fixedClock(issued.Add(time.Minute + time.Second)))
		_, err := j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
	})

	t.Run("long after expiry", func(t *testing.T) {
		j := New(secretKey, time.Minute).WithClock(fixedClock(issued.Add(24 * time.Hour)))
		_, err := j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
	})
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, time.Hour).NewToken(principal)
	require.NoError(t, err)

	_, err = New("invalidSecret", time.Hour).DecodeToken(token)
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenTampered(t *testing.T) {
	j := New(secretKey, time.Hour)
	token, err := j.NewToken(principal)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forged := `{"uid":"someone-else","email":"mallory@x.com","exp":9999999999,"iat":1}`
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = j.DecodeToken(strings.Join(parts, "."))
	assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
}

func TestDecodeTokenRejectsOtherAlgorithms(t *testing.T) {
	j := New(secretKey, time.Hour)
	claims := Claims{
		Uid:   principal.Id,
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
	})

	t.Run("HS512", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secretKey))
		require.NoError(t, err)
		_, err = j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
	})
}

func TestDecodeTokenMissingClaims(t *testing.T) {
	j := New(secretKey, time.Hour)

	t.Run("no exp", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Uid: principal.Id, Email: principal.Email}).SignedString([]byte(secretKey))
		require.NoError(t, err)
		_, err = j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
	})

	t.Run("no uid", func(t *testing.T) {
		claims := Claims{Email: principal.Email, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
		require.NoError(t, err)
		_, err = j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken)
	})
}

func TestDecodeTokenMalformed(t *testing.T) {
	j := New(secretKey, time.Hour)
	for _, token := range []string{"", "invalid_token", "a.b.c", "a.b"} {
		_, err := j.DecodeToken(token)
		assert.ErrorIs(t, err, internal_errors.ErrInvalidToken, token)
	}
}
