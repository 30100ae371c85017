// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/web are allowed to import net/http server primitives.

The route surface mirrors the pages of the site: auth actions at the root,
the browse views at /services and /providers, the customer booking routes,
and the provider area under /provider. Every route below the health probes
runs behind the session loader; the role guards sit on the groups that need
them.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/skillhub/web/internal/catalog"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/orders"
	"github.com/skillhub/web/internal/platform/config"
	"github.com/skillhub/web/internal/platform/constants"
	"github.com/skillhub/web/internal/platform/middleware"
	"github.com/skillhub/web/internal/provider"
	"github.com/skillhub/web/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Session handles login, signup, logout, and the current-session view.
	Session *session.Handler

	// Location serves the service-area catalog and the browser's selection.
	Location *location.Handler

	// Catalog serves the services and providers browse views.
	Catalog *catalog.Handler

	// Orders handles the customer booking routes.
	Orders *orders.Handler

	// Provider handles the provider dashboard and profile routes.
	Provider *provider.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, loader *middleware.SessionLoader, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application Routes
	// Everything below identifies the browser and loads its session record.
	r.Group(func(site chi.Router) {
		site.Use(loader.Handler)

		// Public surface: auth actions, the area catalog, provider browsing.
		h.Session.Register(site)
		site.Mount("/locations", h.Location.Routes())
		site.Get("/providers", h.Catalog.Providers)

		// Customer surface.
		site.Group(func(customer chi.Router) {
			customer.Use(middleware.RequireRole(session.RoleCustomer))
			customer.Get("/services", h.Catalog.Services)
			h.Orders.Register(customer)
		})

		// Provider surface.
		site.With(middleware.RequireRole(session.RoleProvider)).
			Mount("/provider", h.Provider.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
