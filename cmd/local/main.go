package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/campus-events-api/internal/api"
	"github.com/campus-events-api/internal/config"
	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/localstore"
	"github.com/campus-events-api/internal/service"
	"github.com/campus-events-api/pkg/logger"
)

// Local-first variant: state lives in a JSON file on disk and sessions
// replace provider-issued tokens. No database or external identity
// provider is required.
func main() {
	// Initialize logger
	log := logger.New("campus-events-local")
	log.Info().Msg("Starting Campus Events local server...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open the file-backed store
	store, err := localstore.Open(cfg.Local.DataPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data file")
	}
	repos := store.Repositories()

	// Sessions stand in for provider tokens. Roles are chosen at login,
	// so the resolver carries no allow-lists here.
	sessions := localstore.NewSessionManager(repos.User, cfg.Local.AdminAccessCode, log)
	resolver := identity.NewRoleResolver(nil, nil)

	// Initialize services
	services := service.NewServices(repos, resolver, log)

	// Initialize router
	authHandler := api.NewLocalAuthHandler(sessions, log)
	router := api.NewRouter(services, sessions, cfg, log, &api.RouterOptions{
		LocalLogin: authHandler.Login,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("data", cfg.Local.DataPath).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
