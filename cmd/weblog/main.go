// Package main is the entry point for the weblog server. It loads
// configuration, connects to PostgreSQL and Redis, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weblog/internal/cache"
	"weblog/internal/config"
	"weblog/internal/database"
	"weblog/internal/handlers"
	"weblog/internal/interactions"
	"weblog/internal/render"
	"weblog/internal/router"
	"weblog/internal/session"
	"weblog/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

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

	// Seed the initial admin account (no-op if users exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (sessions + page cache).
	redisClient, err := cache.ConnectRedis(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Outside development, session and CSRF cookies are HTTPS-only.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Data stores.
	userStore := store.NewUserStore(db)
	articleStore := store.NewArticleStore(db)
	categoryStore := store.NewCategoryStore(db)
	commentStore := store.NewCommentStore(db)
	likeStore := store.NewLikeStore(db)
	messageStore := store.NewMessageStore(db)

	pageCache := cache.NewPageCache(redisClient, cache.DefaultPageTTL)

	interactionSvc := interactions.New(articleStore, commentStore, likeStore)

	// Handler groups.
	publicHandlers := handlers.NewPublic(renderer, articleStore, categoryStore, commentStore, likeStore, messageStore, pageCache)
	interactHandlers := handlers.NewInteract(interactionSvc, pageCache)
	authHandlers := handlers.NewAuth(renderer, sessionStore, userStore)
	adminHandlers := handlers.NewAdmin(renderer, articleStore, categoryStore, commentStore, messageStore, userStore, likeStore, pageCache)

	authLimiter := router.NewAuthLimiter()
	defer authLimiter.Stop()
	formLimiter := router.NewFormLimiter()
	defer formLimiter.Stop()

	r := router.New(router.Deps{
		Sessions:    sessionStore,
		Public:      publicHandlers,
		Interact:    interactHandlers,
		Auth:        authHandlers,
		Admin:       adminHandlers,
		Secure:      secureCookies,
		AuthLimiter: authLimiter,
		FormLimiter: formLimiter,
	})

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
