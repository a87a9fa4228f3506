package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/staff-portal/internal/api"
	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/config"
	"github.com/isdelr/staff-portal/internal/database"
	"github.com/isdelr/staff-portal/internal/logger"
	"github.com/isdelr/staff-portal/internal/monitoring"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/isdelr/staff-portal/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.IsProduction())

	// Ensure the document directory exists
	if err := os.MkdirAll(cfg.DocumentsPath, 0755); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DocumentsPath).Msg("Failed to create documents directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up backend client
	client, err := backend.New(backend.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize backend client")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	target, _ := cfg.CountdownTargetTime()
	countdownService, err := services.NewCountdownService(cfg.CountdownTitle, target, cfg.CountdownSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize countdown")
	}
	eventService := services.NewEventService(db)
	svc := api.Services{
		Session:       services.NewSessionService(client, db, cfg.MaxLoginAttempts, cfg.LoginLockout),
		Directory:     services.NewDirectoryService(client, eventService),
		News:          services.NewNewsService(client, eventService, cfg.NewsPageSize),
		Notifications: services.NewNotificationService(client, db, eventService),
		Documents:     services.NewDocumentService(cfg.DocumentsPath, services.DefaultCatalog),
		Events:        eventService,
		Countdown:     countdownService,
	}

	// Set up and run the countdown broadcaster
	ticker := monitoring.NewCountdownTicker(countdownService, hub, time.Second)
	go ticker.Run()

	pages, err := views.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load page templates")
	}

	// Set up router
	router := api.NewRouter(db, hub, pages, svc, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.IsProduction(),
		SessionTTL:     cfg.SessionTTL,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("backend", cfg.APIBaseURL).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	ticker.Stop() // Stop the countdown broadcaster
	hub.Stop()    // Close the remaining websocket clients

	log.Info().Msg("Server exiting")
}
