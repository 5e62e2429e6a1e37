package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/phrazzld/ideaflow-api/internal/api"
	apiMiddleware "github.com/phrazzld/ideaflow-api/internal/api/middleware"
	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/phrazzld/ideaflow-api/internal/service"
	"github.com/phrazzld/ideaflow-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Per-IP limit on the unauthenticated auth endpoints.
const (
	authRateLimit  = 20
	authRateWindow = time.Minute
)

// routerDeps are the services the HTTP routes are built from.
type routerDeps struct {
	logger      *slog.Logger
	authConfig  *config.AuthConfig
	jwtService  auth.JWTService
	userService service.UserService
	ideaService service.IdeaService
}

// newRouter creates the application router with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(deps.logger))
	r.Use(apiMiddleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	authHandler := api.NewAuthHandler(deps.userService, deps.jwtService, deps.authConfig, deps.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.jwtService)
	ideaHandler := api.NewIdeaHandler(deps.ideaService, deps.logger)
	accountHandler := api.NewAccountHandler(deps.userService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(authRateLimit, authRateWindow))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.RefreshToken)
		})

		r.Get("/generation/options", api.GenerationOptions)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/ideas/generate", ideaHandler.GenerateIdea)
			r.Get("/ideas", ideaHandler.ListIdeas)
			r.Get("/ideas/{id}", ideaHandler.GetIdea)
			r.Put("/ideas/{id}", ideaHandler.UpdateIdea)
			r.Delete("/ideas/{id}", ideaHandler.DeleteIdea)
			r.Post("/ideas/{id}/schedule", ideaHandler.ScheduleIdea)

			r.Get("/calendar", ideaHandler.Calendar)
			r.Get("/account", accountHandler.GetAccount)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
