package config

import "time"

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	BasePath       string `yaml:"base_path"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

type DatabaseConfig struct {
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TTL      string `yaml:"ttl"`

	UserTTL time.Duration `yaml:"-"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	PublicURL string `yaml:"public_url"`
	Local     bool   `yaml:"local"`
}

// JWTConfig : секреты и время жизни токенов. Строковые TTL из файла
// разбираются один раз при загрузке конфигурации.
type JWTConfig struct {
	AccessTokenSecret  string `yaml:"access_token_secret"`
	AccessTokenTTL     string `yaml:"access_token_ttl"`
	RefreshTokenSecret string `yaml:"refresh_token_secret"`
	RefreshTokenTTL    string `yaml:"refresh_token_ttl"`
	Issuer             string `yaml:"issuer"`

	AccessTTL  time.Duration `yaml:"-"`
	RefreshTTL time.Duration `yaml:"-"`
}

type CookieConfig struct {
	Secure bool `yaml:"secure"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}
