package main

import (
	"account-service/config"
	_ "account-service/docs"
	"account-service/internal/handler"
	"account-service/internal/ports"
	"account-service/internal/repository"
	"account-service/internal/security"
	"account-service/internal/service"
	"account-service/internal/util"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Account-service
// @version 1.0
// @description REST API для регистрации, аутентификации и управления аккаунтом пользователя

// @host localhost:8000
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		slog.Error("ошибка загрузки конфигурации", "error", err)
		os.Exit(1)
	}
	util.SetupLogger(os.Stdout, cfg.Log.Level)

	userRepository, closeStorage, err := setupUserRepository(ctx, &cfg.DatabaseConfig)
	if err != nil {
		slog.Error("не удалось подготовить хранилище пользователей", "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	var userCache ports.UserCache
	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		slog.Error("ошибка подключения к Redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("ошибка при закрытии Redis", "error", err)
			}
		}()
		userCache = repository.NewCacheRepository(redisClient, cfg.RedisConfig.UserTTL)
	} else {
		slog.Warn("REDIS_ADDR не задан, кэш пользователей отключён")
	}

	mediaService, err := service.NewMediaService(ctx, &cfg.S3Config)
	if err != nil {
		slog.Error("ошибка создания сервиса медиа", "error", err)
		os.Exit(1)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(userRepository, jwtService)
	userService := service.NewUserService(userRepository, mediaService, userCache)

	authHandler := handler.NewAuthenticationHandler(authService, jwtService, &cfg.Cookie, cfg.Server.BasePath)
	userHandler := handler.NewUserHandler(userService, cfg.Server.MaxUploadBytes)

	srv, router := config.SetupServer(cfg.Server.Addr)
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	handler.SetupRoutes(router, cfg.Server.BasePath, authHandler, userHandler, security.JWTMiddleware(jwtService, userService))

	runServer(ctx, srv)
}

// setupUserRepository : Postgres, если задан DATABASE_URL, иначе хранилище в памяти
func setupUserRepository(ctx context.Context, cfg *config.DatabaseConfig) (ports.UserRepository, func(), error) {
	if cfg.DSN == "" {
		slog.Warn("DATABASE_URL не задан, пользователи хранятся в памяти процесса")
		return repository.NewMemoryUserRepository(), func() {}, nil
	}

	database, err := config.SetupDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDatabase := func() {
		if err := database.Close(); err != nil {
			slog.Error("ошибка при закрытии БД", "error", err)
		}
	}

	if cfg.Migrate {
		if err := database.RunMigrations(ctx); err != nil {
			closeDatabase()
			return nil, nil, err
		}
		slog.Info("миграции применены")
	}

	return repository.NewUserRepository(database), closeDatabase, nil
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("сервер запущен", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ошибка работы сервера", "error", err)
			return
		}
	case sig := <-signalChannel:
		slog.Info("получен сигнал остановки работы сервера", "signal", sig.String())
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		slog.Error("ошибка при остановке сервера", "error", err)
	} else {
		slog.Info("сервер успешно остановлен")
	}
}
