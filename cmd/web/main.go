// Copyright (c) 2026 SkillHub. All rights reserved.

// Command web is the entry point for the SkillHub web front end.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env in development).
//  3. Connect to Redis.
//  4. Construct the gateway client for the marketplace API.
//  5. Warm the service-area catalog (best effort).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/skillhub/web/internal/api"
	"github.com/skillhub/web/internal/catalog"
	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/orders"
	"github.com/skillhub/web/internal/platform/config"
	"github.com/skillhub/web/internal/platform/constants"
	"github.com/skillhub/web/internal/platform/middleware"
	redisstore "github.com/skillhub/web/internal/platform/redis"
	"github.com/skillhub/web/internal/platform/sec"
	"github.com/skillhub/web/internal/provider"
	"github.com/skillhub/web/internal/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "skillhub-web"))
	slog.SetDefault(log)

	log.Info("[SkillHub] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// .env is a development convenience; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "skillhub-web"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Gateway ────────────────────────────────────────────────────────
	client, err := gateway.New(cfg.APIBaseURL, nil, log, session.TokenFromContext)
	must(log, err, "construct gateway client")

	// ── 5. Session Service ────────────────────────────────────────────────
	sessionStore := session.NewRedisStore(rdb)
	sessionService := session.NewService(sessionStore, client, log)

	// A rejected bearer token means the login state is stale everywhere, so
	// the gateway clears it centrally instead of every caller handling it.
	client.SetAuthFailureHook(func(ctx context.Context) {
		if sess := session.FromContext(ctx); sess != nil {
			sessionService.Invalidate(ctx, sess)
		}
	})

	signer := sec.NewCookieSigner(
		cfg.SessionSecret,
		constants.CookieIssuer,
		constants.SessionCookieName,
		constants.SessionCookiePath,
		cfg.IsProduction(),
	)
	loader := middleware.NewSessionLoader(signer, sessionService, log)

	// ── 6. Location Service ───────────────────────────────────────────────
	areaCatalog := location.NewCatalog(client, log)
	if err := areaCatalog.Load(startupCtx); err != nil {
		// Not fatal: the catalog retries lazily on first use.
		log.Warn("location_catalog_warmup_failed", slog.Any("error", err))
	}
	locationService := location.NewService(areaCatalog, location.NewRedisSelectionStore(rdb), log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckUpstream: func() error {
			return client.Ping(context.Background())
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Session:   session.NewHandler(sessionService),
		Location:  location.NewHandler(locationService),
		Catalog:   catalog.NewHandler(catalog.NewBrowser(client, locationService, log)),
		Orders:    orders.NewHandler(orders.NewService(client, locationService, log)),
		Provider:  provider.NewHandler(provider.NewService(client, locationService, log)),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, loader, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
