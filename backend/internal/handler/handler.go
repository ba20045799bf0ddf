package handler

import (
	"context"

	"github.com/itchan-dev/blogapi/backend/internal/service"
)

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Renderer turns stored Markdown into display HTML.
type Renderer interface {
	Render(content string) string
}

type Handler struct {
	auth     service.AuthService
	blog     service.BlogService
	renderer Renderer
	health   HealthChecker
}

func New(auth service.AuthService, blog service.BlogService, renderer Renderer, health HealthChecker) *Handler {
	return &Handler{
		auth:     auth,
		blog:     blog,
		renderer: renderer,
		health:   health,
	}
}
