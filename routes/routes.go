package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/casting-agency/app"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/utils"
)

// Permissions checked by the protected routes
const (
	PermissionGetMovies   = "get:movies"
	PermissionGetActors   = "get:actors"
	PermissionCreateMovie = "create:movie"
	PermissionGetActor    = "get:actor"
	PermissionDeleteMovie = "delete:movie"
	PermissionDeleteActor = "delete:actor"
	PermissionModifyMovie = "modify:movie"
	PermissionModifyActor = "modify:actor"
)

const requestTimeout = 60 * time.Second

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config

	// Core middleware
	r.Use(middleware.RequestID)
	if cfg.Server.TrustProxyHeaders {
		// Rewrites RemoteAddr, which the rate limiter keys on
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.AccessLog(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.SecureHeaders(cfg.IsProduction() && !cfg.Server.TLS.Enabled, deps.Logger))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(chimw.Timeout(requestTimeout))

	// Health check endpoints
	r.Get("/healthz", deps.HealthHandler.HandleHealth)
	r.Get("/readyz", deps.HealthHandler.HandleReadiness)

	auth := deps.AuthMiddleware

	r.Route("/movies", func(r chi.Router) {
		r.With(auth.RequirePermission(PermissionGetMovies)).Get("/", deps.MovieHandler.HandleList)
		r.With(auth.RequirePermission(PermissionCreateMovie)).Post("/", deps.MovieHandler.HandleCreate)
		r.With(auth.RequirePermission(PermissionModifyMovie)).Patch("/{id:[0-9]+}", deps.MovieHandler.HandleUpdate)
		r.With(auth.RequirePermission(PermissionDeleteMovie)).Delete("/{id:[0-9]+}", deps.MovieHandler.HandleDelete)
	})

	r.Route("/actors", func(r chi.Router) {
		r.With(auth.RequirePermission(PermissionGetActors)).Get("/", deps.ActorHandler.HandleList)
		// Creating an actor has always required get:actor; existing role
		// definitions grant it, so it stays until they are migrated.
		r.With(auth.RequirePermission(PermissionGetActor)).Post("/", deps.ActorHandler.HandleCreate)
		r.With(auth.RequirePermission(PermissionModifyActor)).Patch("/{id:[0-9]+}", deps.ActorHandler.HandleUpdate)
		r.With(auth.RequirePermission(PermissionDeleteActor)).Delete("/{id:[0-9]+}", deps.ActorHandler.HandleDelete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteMethodNotAllowed(w)
	})

	return r
}
