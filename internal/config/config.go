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

	GeminiAPIKey string

	// Default lookback window (days) for category scoring.
	ScoreLookbackDays int

	RateLimitReflection time.Duration
	RateLimitScore      time.Duration

	// Cron schedules for the background agents.
	DailyScoreSchedule string
	ReaperSchedule     string

	// Reflections stuck in "processing" longer than this are failed by the reaper.
	ReflectionStaleAfter time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		DailyScoreSchedule: getEnv("DAILY_SCORE_SCHEDULE", "0 6 * * *"),
		ReaperSchedule:     getEnv("REAPER_SCHEDULE", "*/10 * * * *"),
	}

	lookback, err := strconv.Atoi(getEnv("SCORE_LOOKBACK_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCORE_LOOKBACK_DAYS: %w", err)
	}
	cfg.ScoreLookbackDays = lookback

	cfg.RateLimitReflection, err = time.ParseDuration(getEnv("RATE_LIMIT_REFLECTION", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFLECTION: %w", err)
	}
	cfg.RateLimitScore, err = time.ParseDuration(getEnv("RATE_LIMIT_SCORE", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SCORE: %w", err)
	}
	cfg.ReflectionStaleAfter, err = time.ParseDuration(getEnv("REFLECTION_STALE_AFTER", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFLECTION_STALE_AFTER: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
