package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret  string
	AdminEmail string

	SMTPHost               string
	SMTPPort               string
	SMTPUsername           string
	SMTPPassword           string
	SenderEmail            string
	SenderName             string
	AdminNotificationEmail string

	RateLimitSuggestion time.Duration
	UpvoteCacheTTL      time.Duration
	MaxPageSize         int
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		AdminEmail: os.Getenv("ADMIN_EMAIL"),

		SMTPHost:               os.Getenv("SMTP_HOST"),
		SMTPPort:               getEnv("SMTP_PORT", "587"),
		SMTPUsername:           os.Getenv("SMTP_USERNAME"),
		SMTPPassword:           os.Getenv("SMTP_PASSWORD"),
		SenderEmail:            os.Getenv("SENDER_EMAIL"),
		SenderName:             getEnv("SENDER_NAME", "Innovation Hub"),
		AdminNotificationEmail: os.Getenv("ADMIN_NOTIFICATION_EMAIL"),
	}

	var err error
	cfg.RateLimitSuggestion, err = time.ParseDuration(getEnv("RATE_LIMIT_SUGGESTION", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUGGESTION: %w", err)
	}
	cfg.UpvoteCacheTTL, err = time.ParseDuration(getEnv("UPVOTE_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPVOTE_CACHE_TTL: %w", err)
	}
	cfg.MaxPageSize, err = strconv.Atoi(getEnv("MAX_PAGE_SIZE", "50"))
	if err != nil || cfg.MaxPageSize < 1 {
		return nil, fmt.Errorf("invalid MAX_PAGE_SIZE: %q", os.Getenv("MAX_PAGE_SIZE"))
	}

	if cfg.JWTSecret == "" {
		if cfg.AppEnv != "development" {
			return nil, fmt.Errorf("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = "change-me"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
