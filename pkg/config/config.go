package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Log      LogConfig
	Jobs     JobsConfig
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"3000"`
	Seed bool   `env:"SEED" envDefault:"false"`
}

type DatabaseConfig struct {
	URL          string `env:"DATABASE_URL,notEmpty"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET,notEmpty"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// StorageConfig points at the R2 bucket that holds property photos.
type StorageConfig struct {
	AccountID   string `env:"R2_ACCOUNT_ID"`
	AccessKey   string `env:"R2_ACCESS_KEY"`
	SecretKey   string `env:"R2_SECRET_KEY"`
	BucketName  string `env:"R2_BUCKET_NAME"`
	PublicURL   string `env:"PHOTO_BASE_URL" envDefault:"https://cdn.lightbnb.com"`
	MaxFileSize int64  `env:"PHOTO_MAX_BYTES" envDefault:"10485760"`
}

// Enabled reports whether photo uploads can be served.
func (s StorageConfig) Enabled() bool {
	return s.AccountID != "" && s.AccessKey != "" && s.SecretKey != "" && s.BucketName != ""
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

type JobsConfig struct {
	PoolStatsSchedule string `env:"POOL_STATS_SCHEDULE" envDefault:"@every 5m"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional outside development

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
