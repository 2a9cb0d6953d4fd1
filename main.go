package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quillpad/quillpad-be/internal/api"
	"github.com/quillpad/quillpad-be/internal/auth"
	"github.com/quillpad/quillpad-be/internal/config"
	"github.com/quillpad/quillpad-be/internal/database"
	"github.com/quillpad/quillpad-be/internal/events"
	"github.com/quillpad/quillpad-be/internal/logger"
	"github.com/quillpad/quillpad-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the live activity feed hub
	hub := events.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	postService := services.NewPostService(db)

	// Token verification is stateless: a role change or account deletion
	// only takes effect once outstanding tokens expire.
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	log.Info().Dur("token_ttl", cfg.TokenTTL).Msg("Stateless token verification enabled; role changes apply after token expiry")

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Tokens:        tokenManager,
		Users:         userService,
		Posts:         postService,
		Events:        eventService,
		FeedHub:       hub,
		AllowedOrigin: cfg.AllowedOrigin,
		SecureCookies: cfg.Env == "production",
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
