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

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/chess-league/brackets"
	"github.com/Dosada05/chess-league/config"
	"github.com/Dosada05/chess-league/db"
	"github.com/Dosada05/chess-league/handlers"
	"github.com/Dosada05/chess-league/realtime"
	"github.com/Dosada05/chess-league/repositories"
	api "github.com/Dosada05/chess-league/routes"
	"github.com/Dosada05/chess-league/services"
	"github.com/Dosada05/chess-league/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("round_weekday", cfg.RoundWeekday.String()),
		slog.String("dwz_encoding", cfg.DWZEncoding),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(ctx, cfg.DatabaseURL, db.Options{PingTimeout: 5 * time.Second})
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

	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// archive stays a nil interface when R2 is not configured
	var archive services.Archiver
	if cfg.R2.Enabled() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicBaseURL:   cfg.R2.PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		archive = storage.NewReportArchive(uploader)
		logger.Info("report archive enabled", slog.String("bucket", cfg.R2.BucketName))
	}

	wsHub := realtime.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket hub started")

	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)

	standingsService := services.NewStandingsService(groupRepo, participantRepo, gameRepo, logger)
	groupService := services.NewGroupService(groupRepo, participantRepo, gameRepo, standingsService, wsHub, cfg.RoundWeekday, logger)
	scheduleService := services.NewScheduleService(
		services.NewSQLTransactor(dbConn, logger),
		groupRepo,
		participantRepo,
		gameRepo,
		brackets.NewRoundRobinGenerator(),
		wsHub,
		logger,
	)
	gameService := services.NewGameService(gameRepo, standingsService, wsHub, logger)
	reportService := services.NewReportService(
		groupRepo,
		participantRepo,
		gameRepo,
		archive,
		cfg.DWZEncoding == config.EncodingLatin1,
		logger,
	)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{JWTSecret: cfg.JWTSecretKey, AllowedOrigins: cfg.AllowedOrigins},
		handlers.NewGroupHandler(groupService, scheduleService, standingsService),
		handlers.NewGameHandler(gameService),
		handlers.NewReportHandler(reportService),
		handlers.NewWebSocketHandler(wsHub, groupService, cfg.AllowedOrigins),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped")
	case <-ctx.Done():
		logger.Info("shutdown signal received")

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
