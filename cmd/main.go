package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubedopeao/tournament-api/config"
	"github.com/clubedopeao/tournament-api/db"
	"github.com/clubedopeao/tournament-api/handlers"
	"github.com/clubedopeao/tournament-api/live"
	"github.com/clubedopeao/tournament-api/repositories"
	api "github.com/clubedopeao/tournament-api/routes"
	"github.com/clubedopeao/tournament-api/services"
	"github.com/clubedopeao/tournament-api/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Logo storage is optional: without R2 credentials the upload
	// endpoint answers 503 and everything else runs.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 storage not configured, logo uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("WebSocket hub started")

	refereeRepo := repositories.NewPostgresRefereeRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	pairingRepo := repositories.NewPostgresPairingRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	checkinRepo := repositories.NewPostgresCheckinRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	rollbackRepo := repositories.NewPostgresRollbackRepository(dbConn)
	procRepo := repositories.NewPostgresProcedureRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(refereeRepo)
	playerService := services.NewPlayerService(playerRepo)
	tournamentService := services.NewTournamentService(tournamentRepo, standingRepo, uploader)
	sessionService := services.NewSessionService(sessionRepo, checkinRepo, procRepo, hub)
	boardService := services.NewBoardService(sessionRepo, pairingRepo, matchRepo, procRepo, hub)
	auditService := services.NewAuditService(rollbackRepo, playerRepo, refereeRepo)
	logger.Info("services initialized")

	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Board:      handlers.NewBoardHandler(boardService),
		Session:    handlers.NewSessionHandler(sessionService),
		Tournament: handlers.NewTournamentHandler(tournamentService),
		Public:     handlers.NewPublicHandler(playerService, tournamentService, sessionService),
		Audit:      handlers.NewAuditHandler(auditService),
		WebSocket:  handlers.NewWebSocketHandler(hub),
	}, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
