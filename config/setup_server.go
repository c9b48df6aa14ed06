package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Server         ServerConfig   `yaml:"server"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	Cookie         CookieConfig   `yaml:"cookie"`
	Log            LogConfig      `yaml:"log"`
}

func defaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Addr:           ":8000",
			BasePath:       "/api/v1",
			MaxUploadBytes: 10 << 20,
		},
		RedisConfig: RedisConfig{TTL: "5m"},
		S3Config:    S3Config{Region: "us-east-1"},
		JWT: JWTConfig{
			AccessTokenTTL:  "15m",
			RefreshTokenTTL: "10d",
			Issuer:          "account-service",
		},
		Cookie: CookieConfig{Secure: true},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadConfig : собирает конфигурацию из yaml файла, .env и переменных окружения.
// Переменные окружения имеют приоритет над файлом. Результат считается неизменяемым.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("файл конфигурации не найден, используются значения по умолчанию", "path", path)
		case err != nil:
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		default:
			if err := yaml.Unmarshal(file, &cfg); err != nil {
				return nil, fmt.Errorf("ошибка парсинга .yaml файла: %w", err)
			}
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	applyEnv(&cfg, os.LookupEnv)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *AppConfig) finalize() error {
	var err error

	if cfg.JWT.AccessTokenSecret == "" || cfg.JWT.RefreshTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET и REFRESH_TOKEN_SECRET обязательны")
	}
	if cfg.JWT.AccessTokenSecret == cfg.JWT.RefreshTokenSecret {
		return fmt.Errorf("секреты access и refresh токенов должны различаться")
	}

	if cfg.JWT.AccessTTL, err = ParseTTL(cfg.JWT.AccessTokenTTL); err != nil {
		return fmt.Errorf("неверный access_token_ttl: %w", err)
	}
	if cfg.JWT.RefreshTTL, err = ParseTTL(cfg.JWT.RefreshTokenTTL); err != nil {
		return fmt.Errorf("неверный refresh_token_ttl: %w", err)
	}
	if cfg.RedisConfig.UserTTL, err = ParseTTL(cfg.RedisConfig.TTL); err != nil {
		return fmt.Errorf("неверный redis ttl: %w", err)
	}

	if cfg.Server.MaxUploadBytes <= 0 {
		cfg.Server.MaxUploadBytes = 10 << 20
	}

	return nil
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return server, router
}

func SetupDatabase(cfg *DatabaseConfig) (*Database, error) {
	return NewDatabaseConnection("postgres", cfg.DSN)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
