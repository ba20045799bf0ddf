package setup

import (
	"context"
	"fmt"

	"github.com/itchan-dev/blogapi/backend/internal/handler"
	"github.com/itchan-dev/blogapi/backend/internal/markdown"
	"github.com/itchan-dev/blogapi/backend/internal/service"
	"github.com/itchan-dev/blogapi/backend/internal/storage/memory"
	"github.com/itchan-dev/blogapi/backend/internal/storage/pg"
	"github.com/itchan-dev/blogapi/shared/config"
	"github.com/itchan-dev/blogapi/shared/jwt"
	mw "github.com/itchan-dev/blogapi/shared/middleware"
	"github.com/itchan-dev/blogapi/shared/passwords"
)

// Storage is everything the services and probes need from a storage driver.
type Storage interface {
	service.AuthStorage
	service.BlogStorage
	handler.HealthChecker
	RunMigrations(ctx context.Context) error
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Storage
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

// NewStorage opens the driver selected in config.
func NewStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		return pg.New(ctx, cfg.DatabaseURL(), pg.DefaultConnectionConfig())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
}

// SetupDependencies initializes all dependencies required for the application.
// Migrations are applied before the storage is handed to the services.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := storage.RunMigrations(ctx); err != nil {
		storage.Cleanup()
		return nil, err
	}
	return NewDependencies(cfg, storage), nil
}

// NewDependencies wires services and handlers on top of an open storage.
func NewDependencies(cfg *config.Config, storage Storage) *Dependencies {
	tokens := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	hasher := passwords.New(cfg.Public.BcryptCost)

	auth := service.NewAuth(storage, hasher, tokens)
	blog := service.NewBlog(storage, cfg.Public.Blogs.OwnerScopedReads)

	h := handler.New(auth, blog, markdown.New(), storage)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		AuthMiddleware: mw.NewAuth(tokens),
	}
}
