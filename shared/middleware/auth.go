package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itchan-dev/blogapi/shared/domain"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
	"github.com/itchan-dev/blogapi/shared/utils"
)

// TokenVerifier is the part of the token service the middleware needs.
type TokenVerifier interface {
	DecodeToken(jwtStr string) (domain.Principal, error)
}

// Key to store the principal in the request context
type key int

const PrincipalKey key = 0

// Auth establishes request identity from an Authorization: Bearer header.
// It is the only place a Principal enters a request context.
type Auth struct {
	tokens TokenVerifier
}

func NewAuth(tokens TokenVerifier) *Auth {
	return &Auth{tokens: tokens}
}

// NeedAuth rejects requests without a valid bearer token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := a.extractPrincipal(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// extractPrincipal returns ErrUnauthenticated when no token is presented and
// ErrInvalidToken when one is presented but fails verification.
func (a *Auth) extractPrincipal(r *http.Request) (domain.Principal, error) {
	token, ok := BearerToken(r)
	if !ok {
		return domain.Principal{}, internal_errors.ErrUnauthenticated
	}
	principal, err := a.tokens.DecodeToken(token)
	if err != nil {
		return domain.Principal{}, internal_errors.ErrInvalidToken
	}
	return principal, nil
}

// BearerToken returns the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// PrincipalFromContext returns the principal attached by NeedAuth.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(domain.Principal)
	return principal, ok
}

func GetPrincipalFromRequest(r *http.Request) (domain.Principal, bool) {
	return PrincipalFromContext(r.Context())
}
