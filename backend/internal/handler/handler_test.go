package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/blogapi/shared/domain"
	mw "github.com/itchan-dev/blogapi/shared/middleware"
)

var testPrincipal = domain.Principal{Id: "0b6a4f5e-65b7-4a52-8f3c-6c1d0c1f2a3b", Email: "owner@example.com"}

type stubRenderer struct{}

func (stubRenderer) Render(content string) string { return "<p>" + content + "</p>" }

func newTestHandler(auth *MockAuthService, blog *MockBlogService) *Handler {
	if auth == nil {
		auth = &MockAuthService{}
	}
	if blog == nil {
		blog = &MockBlogService{}
	}
	return New(auth, blog, stubRenderer{}, &MockHealthChecker{})
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withPrincipal stands in for the auth middleware.
func withPrincipal(p domain.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(mw.WithPrincipal(r.Context(), p)))
		})
	}
}

func blogRouter(h *Handler, p *domain.Principal) http.Handler {
	r := chi.NewRouter()
	if p != nil {
		r.Use(withPrincipal(*p))
	}
	r.Post("/api/blogs", h.CreateBlog)
	r.Get("/api/blogs", h.GetBlogs)
	r.Get("/api/blogs/{id}", h.GetBlog)
	r.Put("/api/blogs/{id}", h.UpdateBlog)
	r.Delete("/api/blogs/{id}", h.DeleteBlog)
	return r
}
