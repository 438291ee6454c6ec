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
	"github.com/campus-events-api/internal/database"
	"github.com/campus-events-api/internal/identity"
	"github.com/campus-events-api/internal/repository"
	"github.com/campus-events-api/internal/service"
	"github.com/campus-events-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New("campus-events-api")
	log.Info().Msg("Starting Campus Events API server...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Token verification against the identity provider
	keys := identity.NewCertsKeySource(cfg.Auth.CertsURL)
	verifier := identity.NewTokenVerifier(keys, cfg.Auth.Issuer, cfg.Auth.Audience)
	resolver := identity.NewRoleResolver(cfg.Auth.AdminEmails, cfg.Auth.EventHeadEmails)

	// Initialize services
	services := service.NewServices(repos, resolver, log)

	// Initialize router
	router := api.NewRouter(services, verifier, cfg, log, nil)

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
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
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
