package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itchan-dev/blogapi/backend/internal/setup"
	mw "github.com/itchan-dev/blogapi/shared/middleware"
	"github.com/itchan-dev/blogapi/shared/middleware/metrics"
)

const maxBodyBytes = 1 << 20

// New creates and configures a chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(maxBodyBytes))
	r.Use(mw.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(deps.Config.IsProduction()))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.Cors.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Signup)
			r.Post("/signin", h.Signin)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Post("/", h.CreateBlog)
			r.Get("/", h.GetBlogs)
			r.Get("/{id}", h.GetBlog)
			r.Put("/{id}", h.UpdateBlog)
			r.Delete("/{id}", h.DeleteBlog)
		})
	})

	return r
}
