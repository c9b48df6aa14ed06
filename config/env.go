package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv : подгружает .env, если он есть. Уже заданные переменные окружения не перезаписываются.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *AppConfig, lookup lookupFunc) {
	setString := func(key string, target *string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}

	setString("SERVER_ADDR", &cfg.Server.Addr)
	setString("BASE_PATH", &cfg.Server.BasePath)
	setString("DATABASE_URL", &cfg.DatabaseConfig.DSN)

	setString("ACCESS_TOKEN_SECRET", &cfg.JWT.AccessTokenSecret)
	setString("ACCESS_TOKEN_EXPIRY", &cfg.JWT.AccessTokenTTL)
	setString("REFRESH_TOKEN_SECRET", &cfg.JWT.RefreshTokenSecret)
	setString("REFRESH_TOKEN_EXPIRY", &cfg.JWT.RefreshTokenTTL)

	setString("REDIS_ADDR", &cfg.RedisConfig.Addr)
	setString("REDIS_PASSWORD", &cfg.RedisConfig.Password)

	setString("MEDIA_BUCKET", &cfg.S3Config.Bucket)
	setString("MEDIA_REGION", &cfg.S3Config.Region)
	setString("MEDIA_ENDPOINT", &cfg.S3Config.Endpoint)
	setString("MEDIA_ACCESS_KEY", &cfg.S3Config.AccessKey)
	setString("MEDIA_SECRET_KEY", &cfg.S3Config.SecretKey)
	setString("MEDIA_PUBLIC_URL", &cfg.S3Config.PublicURL)

	setString("LOG_LEVEL", &cfg.Log.Level)

	if v, ok := lookup("COOKIE_SECURE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cookie.Secure = b
		}
	}
	if v, ok := lookup("DATABASE_MIGRATE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DatabaseConfig.Migrate = b
		}
	}
}

const (
	day        = 24 * time.Hour
	maxTTLDays = math.MaxInt64 / int64(day)
)

// ParseTTL : разбирает длительность в формате Go ("15m", "1h") либо в днях ("10d")
func ParseTTL(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("пустое значение")
	}

	var (
		d   time.Duration
		err error
	)
	if days, ok := strings.CutSuffix(value, "d"); ok {
		var n int64
		n, err = strconv.ParseInt(days, 10, 64)
		if err == nil && n > maxTTLDays {
			return 0, fmt.Errorf("слишком большая длительность: %q", value)
		}
		if n > 0 {
			d = time.Duration(n) * day
		}
	} else {
		d, err = time.ParseDuration(value)
	}
	if err != nil {
		return 0, fmt.Errorf("не удалось разобрать %q: %w", value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("длительность должна быть положительной: %q", value)
	}

	return d, nil
}
