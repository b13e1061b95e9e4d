package app

import (
	"context"
	"fmt"

	"github.com/upb/casting-agency/auth0"
	"github.com/upb/casting-agency/config"
	"github.com/upb/casting-agency/handlers"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/repositories"
	"github.com/upb/casting-agency/repositories/postgres"
	"github.com/upb/casting-agency/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Movies    repositories.MovieRepository
	Actors    repositories.ActorRepository
	TxManager repositories.TransactionManager

	// Services
	MovieService *services.MovieService
	ActorService *services.ActorService

	// Auth. KeySet is nil when the identity provider is not configured.
	KeySet         *auth0.KeySet
	Guard          middleware.Authorizer
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	MovieHandler  *handlers.MovieHandler
	ActorHandler  *handlers.ActorHandler
	HealthHandler *handlers.HealthHandler
}

// NewDependencies connects to PostgreSQL, prepares the schema and wires
// everything on top of it.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := factory.PrepareSchema(ctx, cfg.Database.ResetOnStart); err != nil {
		_ = factory.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}
	if cfg.Database.ResetOnStart {
		logger.Warn("database schema reset and seeded")
	}

	deps, err := NewDependenciesWithFactory(cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesWithFactory wires repositories, services, auth and handlers
// around an existing repository factory.
func NewDependenciesWithFactory(cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	deps.initRepositories()
	deps.initServices()

	if err := deps.initAuth(cfg.Auth0); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Movies = repos.Movies
	d.Actors = repos.Actors
	d.TxManager = d.RepoFactory.GetTransactionManager()
}

func (d *Dependencies) initServices() {
	d.MovieService = services.NewMovieService(d.Movies, d.TxManager, d.Logger)
	d.ActorService = services.NewActorService(d.Actors, d.TxManager, d.Logger)
}

// initAuth builds the JWKS-backed guard. Without an identity provider every
// protected route answers 401.
func (d *Dependencies) initAuth(cfg config.Auth0Config) error {
	if !cfg.Enabled() {
		d.Logger.Warn("auth0 not configured, protected routes will reject every request")
		d.Guard = &rejectAllAuthorizer{}
		d.AuthMiddleware = middleware.NewAuthMiddleware(d.Guard, d.Logger)
		return nil
	}

	d.KeySet = auth0.NewKeySet(auth0.KeySetConfig{
		JWKSURL:            cfg.JWKSURL,
		CacheTTL:           cfg.JWKSCacheTTL,
		FetchTimeout:       cfg.JWKSTimeout,
		MinRefreshInterval: cfg.JWKSMinRefreshInterval,
	}, d.Logger)

	verifier, err := auth0.NewVerifier(d.KeySet, auth0.VerifierConfig{
		Issuer:    cfg.Issuer,
		Audience:  cfg.Audience,
		Algorithm: cfg.Algorithm,
		Leeway:    cfg.ClockSkew,
	})
	if err != nil {
		return err
	}

	d.Guard = auth0.NewGuard(verifier)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.Guard, d.Logger)

	d.Logger.Info("auth0 guard initialized",
		zap.String("issuer", cfg.Issuer),
		zap.String("audience", cfg.Audience),
		zap.String("algorithm", verifier.Algorithm()),
		zap.String("jwks_url", cfg.JWKSURL))
	return nil
}

func (d *Dependencies) initHandlers() {
	d.MovieHandler = handlers.NewMovieHandler(d.MovieService, d.Logger)
	d.ActorHandler = handlers.NewActorHandler(d.ActorService, d.Logger)

	// A nil *KeySet must not become a non-nil interface
	var keys handlers.KeyCache
	if d.KeySet != nil {
		keys = d.KeySet
	}
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, keys, d.Logger)
}

// rejectAllAuthorizer rejects every request as unauthenticated
type rejectAllAuthorizer struct{}

func (*rejectAllAuthorizer) Authorize(context.Context, string, string) (*auth0.Claims, error) {
	return nil, &auth0.AuthError{
		Code:        auth0.CodeUnknownSigningKey,
		Description: "identity provider is not configured",
		Status:      auth0.ErrUnknownSigningKey.Status,
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
