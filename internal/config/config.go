package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"skill-radar/internal/domain/analysis"
	"skill-radar/internal/domain/extraction"
	"skill-radar/internal/domain/trend"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Engine   EngineConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// Enabled reports whether an archive database is configured at all.
// The engine itself is in-memory; Postgres is an optional collaborator.
func (c DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(c.DBHost) != ""
}

type EngineConfig struct {
	TopN              int
	TrendThreshold    float64
	MaxDescriptionLen int
	MaxBatchLen       int
	TaxonomyFile      string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),
	}

	cfg.Engine = EngineConfig{
		TopN:              optInt("ANALYSIS_TOP_N", analysis.DefaultTopN),
		TrendThreshold:    optFloat("TREND_THRESHOLD", trend.DefaultThreshold),
		MaxDescriptionLen: optInt("MAX_DESCRIPTION_LEN", extraction.DefaultMaxDescriptionLen),
		MaxBatchLen:       optInt("MAX_BATCH_LEN", extraction.DefaultMaxBatchLen),
		TaxonomyFile:      opt("TAXONOMY_FILE"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func optFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
