package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/itchan-dev/blogapi/shared/domain"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
	"github.com/itchan-dev/blogapi/shared/logger"
)

const DefaultTTL = 2 * time.Hour

type JwtService interface {
	NewToken(principal domain.Principal) (string, error)
	DecodeToken(jwtStr string) (domain.Principal, error)
}

// Claims is the signed payload. Registered claims carry iat and exp.
type Claims struct {
	Uid   domain.UserId `json:"uid"`
	Email domain.Email  `json:"email"`
	jwt.RegisteredClaims
}

var _ JwtService = (*Jwt)(nil)

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey string, ttl time.Duration) *Jwt {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (j *Jwt) WithClock(now func() time.Time) *Jwt {
	j.now = now
	return j
}

func (j *Jwt) NewToken(principal domain.Principal) (string, error) {
	issuedAt := j.now()
	claims := Claims{
		Uid:   principal.Id,
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

// DecodeToken returns the principal for a token signed with this key and not
// yet expired. Every failure is reported as ErrInvalidToken so callers can't
// tell a forged token from an expired one.
func (j *Jwt) DecodeToken(jwtStr string) (domain.Principal, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(jwtStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		return domain.Principal{}, internal_errors.ErrInvalidToken
	}
	if !token.Valid || claims.Uid == "" || claims.Email == "" {
		return domain.Principal{}, internal_errors.ErrInvalidToken
	}

	return domain.Principal{Id: claims.Uid, Email: claims.Email}, nil
}
