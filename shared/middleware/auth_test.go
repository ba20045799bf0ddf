package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/itchan-dev/blogapi/shared/domain"
	jwt_internal "github.com/itchan-dev/blogapi/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	principal := domain.Principal{Id: "0b6a4f5e-65b7-4a52-8f3c-6c1d0c1f2a3b", Email: "test@example.com"}
	token, err := jwtService.NewToken(principal)
	require.NoError(t, err)

	expired, err := jwt_internal.New("test_secret", time.Minute).
		WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).
		NewToken(principal)
	require.NoError(t, err)

	foreign, err := jwt_internal.New("other_secret", time.Hour).NewToken(principal)
	require.NoError(t, err)

	tests := []struct {
		name            string
		header          string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "Valid token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Lowercase scheme",
			header:         "bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "No header",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"message":"Access denied. No token provided."}`,
		},
		{
			name:            "Bearer without token",
			header:          "Bearer ",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"message":"Access denied. No token provided."}`,
		},
		{
			name:            "Other scheme",
			header:          "Basic dXNlcjpwYXNz",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"message":"Access denied. No token provided."}`,
		},
		{
			name:            "Malformed token",
			header:          "Bearer invalid_token",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"message":"Invalid token."}`,
		},
		{
			name:            "Expired token",
			header:          "Bearer " + expired,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"message":"Invalid token."}`,
		},
		{
			name:            "Token signed with another secret",
			header:          "Bearer " + foreign,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"message":"Invalid token."}`,
		},
	}

	authMw := NewAuth(jwtService)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			called := false

			handler := authMw.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got, ok := GetPrincipalFromRequest(r)
				require.True(t, ok, "Auth should always propagate principal thru context")
				assert.Equal(t, principal, got)
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, "handler returned wrong status code")
			assert.Equal(t, tt.expectedStatus == http.StatusOK, called, "next handler must only run for valid tokens")
			if tt.expectedMessage != "" {
				assert.JSONEq(t, tt.expectedMessage, rr.Body.String())
			}
		})
	}
}

func TestPrincipalFromContext(t *testing.T) {
	t.Run("no principal in context", func(t *testing.T) {
		_, ok := PrincipalFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("principal in context", func(t *testing.T) {
		principal := domain.Principal{Id: "1", Email: "test@example.com"}
		got, ok := PrincipalFromContext(WithPrincipal(context.Background(), principal))
		require.True(t, ok)
		assert.Equal(t, principal, got)
	})
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":    "abc",
		"BEARER  abc  ": "abc",
		"Bearer":        "",
		"Token abc":     "",
		"":              "",
	} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", header)
		got, ok := BearerToken(req)
		assert.Equal(t, want, got, header)
		assert.Equal(t, want != "", ok, header)
	}
}
