// Package main is the entry point for the locpulse API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"locpulse/internal/cache"
	"locpulse/internal/config"
	"locpulse/internal/database"
	"locpulse/internal/handlers"
	"locpulse/internal/notify"
	"locpulse/internal/router"
	"locpulse/internal/session"
	"locpulse/internal/store"
)

func main() {
	// Structured logger. Debug level so development output shows cache
	// hits and invalidations.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache, session store and job queue).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize the session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)
	resetTokens := session.NewResetTokens(valkeyClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	locationStore := store.NewLocationStore(db)
	reviewStore := store.NewReviewStore(db)
	reactionStore := store.NewReactionStore(db)
	subscriptionStore := store.NewSubscriptionStore(db)
	invalidationLog := store.NewInvalidationLogStore(db)

	// Cache and invalidation. The Valkey backend supports prefix deletes, so
	// list and collection keys are invalidated by pattern.
	apiCache := cache.NewValkey(valkeyClient)
	invalidator := cache.NewInvalidator(apiCache, invalidationLog)

	// Mail delivery: real SMTP when configured, log-only otherwise.
	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	} else {
		slog.Warn("smtp not configured, notification emails are logged only")
		mailer = notify.LogMailer{}
	}

	// Notification queue and background delivery worker.
	queue := notify.NewValkeyQueue(valkeyClient)
	notifier := notify.NewNotifier(queue, subscriptionStore)
	worker := notify.NewWorker(queue, mailer)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(sessionStore, resetTokens, userStore, notifier, cfg.BaseURL)
	locationHandlers := handlers.NewLocations(locationStore, apiCache, invalidator)
	reviewHandlers := handlers.NewReviews(reviewStore, locationStore, apiCache, invalidator, notifier)
	reactionHandlers := handlers.NewReactions(reactionStore, reviewStore, apiCache, invalidator)
	subscriptionHandlers := handlers.NewSubscriptions(subscriptionStore, locationStore, apiCache, invalidator, notifier)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, authHandlers, locationHandlers, reviewHandlers, reactionHandlers, subscriptionHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Stop the notification worker, then give active requests up to 30
	// seconds to complete.
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
