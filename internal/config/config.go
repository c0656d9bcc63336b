package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8000"
	defaultDatabaseURL     = "hotels.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTAccessTTL    = "30m"
	defaultCookieSecure    = "false"
	defaultAutoMigrate     = "true"
	defaultCacheTTL        = "10s"
	defaultImagesDir       = "static/images"
	defaultWorkers         = "4"
	defaultQueueBuffer     = "256"
	defaultCheckinInterval = "24h"
	defaultMaxImageSize    = "5242880"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	DatabaseURL     string
	AutoMigrate     bool
	JWTSecret       string
	JWTAccessTTL    time.Duration
	CookieSecure    bool
	RedisURL        string
	CacheTTL        time.Duration
	ImagesDir       string
	MaxImageSize    int64
	Workers         int
	QueueBuffer     int
	CheckinInterval time.Duration
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.ImagesDir = strings.TrimSpace(getEnv("IMAGES_DIR", defaultImagesDir))
	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.AutoMigrate = parseBoolEnv("DB_AUTO_MIGRATE", defaultAutoMigrate)

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = parseDurationEnv("CACHE_TTL", defaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.CheckinInterval, err = parseDurationEnv("CHECKIN_INTERVAL", defaultCheckinInterval); err != nil {
		return nil, err
	}
	if cfg.Workers, err = parseIntEnv("WORKERS", defaultWorkers); err != nil {
		return nil, err
	}
	if cfg.QueueBuffer, err = parseIntEnv("QUEUE_BUFFER", defaultQueueBuffer); err != nil {
		return nil, err
	}
	maxSize, err := parseIntEnv("MAX_IMAGE_SIZE", defaultMaxImageSize)
	if err != nil {
		return nil, err
	}
	cfg.MaxImageSize = int64(maxSize)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProdLike reports whether the app runs in a production-like environment.
func (c *Config) IsProdLike() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must be >= 0")
	}
	if cfg.CheckinInterval <= 0 {
		return fmt.Errorf("CHECKIN_INTERVAL must be > 0")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("WORKERS must be > 0")
	}
	if cfg.QueueBuffer <= 0 {
		return fmt.Errorf("QUEUE_BUFFER must be > 0")
	}
	if cfg.MaxImageSize <= 0 {
		return fmt.Errorf("MAX_IMAGE_SIZE must be > 0")
	}
	if cfg.ImagesDir == "" {
		return fmt.Errorf("IMAGES_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
