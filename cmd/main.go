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

	"github.com/Askhat-B/esports-hub/config"
	"github.com/Askhat-B/esports-hub/db"
	"github.com/Askhat-B/esports-hub/handlers"
	"github.com/Askhat-B/esports-hub/live"
	"github.com/Askhat-B/esports-hub/middleware"
	"github.com/Askhat-B/esports-hub/repositories"
	"github.com/Askhat-B/esports-hub/room"
	api "github.com/Askhat-B/esports-hub/routes"
	"github.com/Askhat-B/esports-hub/services"
	"github.com/Askhat-B/esports-hub/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
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

	// Инициализация загрузчика файлов (Cloudflare R2)
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		r2Uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
		uploader = r2Uploader
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage is not configured, banner uploads disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	complaintRepo := repositories.NewPostgresComplaintRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов
	userService := services.NewUserService(userRepo, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(
		tournamentRepo,
		participantRepo,
		uploader,
		wsHub,
		logger,
	)
	joinService := services.NewJoinService(
		dbConn, // Pass dbConn for transaction management
		tournamentRepo,
		userRepo,
		participantRepo,
		room.NewGenerator(),
		wsHub,
		logger,
	)
	complaintService := services.NewComplaintService(complaintRepo)
	resultService := services.NewResultService(resultRepo, tournamentRepo)
	adminService := services.NewAdminService(userRepo, tournamentRepo, complaintRepo, logger)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	userHandler := handlers.NewUserHandler(userService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, joinService)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	resultHandler := handlers.NewResultHandler(resultService)
	adminHandler := handlers.NewAdminHandler(adminService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		userHandler,
		tournamentHandler,
		complaintHandler,
		resultHandler,
		adminHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
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

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
