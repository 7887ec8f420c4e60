package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"esports-digest/internal/constants"
	"esports-digest/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	RegistryFile   = "file"
	RegistrySQLite = "sqlite"
)

type Config struct {
	HDevAPIKey string
	LoLAPIKey  string
	ServerPort string
	LogLevel   string
	CacheTTL   time.Duration
	SeasonYear int

	RegistryBackend string
	RegistryPath    string
	DBPath          string

	CaptureURL         string
	SlackSigningSecret string

	VLRBaseURL  string
	HDevBaseURL string
	SeasonsURL  string
	LoLBaseURL  string
}

func Load(log zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}
	return FromEnv(log)
}

// FromEnv builds the configuration from the process environment only.
func FromEnv(log zerolog.Logger) (*Config, error) {
	cfg := &Config{
		HDevAPIKey: getEnv("HDEV_API_KEY", ""),
		LoLAPIKey:  getEnv("LOL_API_KEY", ""),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		RegistryBackend: getEnv("REGISTRY_BACKEND", RegistryFile),
		RegistryPath:    getEnv("REGISTRY_PATH", "destinations.json"),
		DBPath:          getEnv("DB_PATH", "digest.db"),

		CaptureURL:         getEnv("CAPTURE_URL", "http://localhost:3000/capture"),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),

		VLRBaseURL:  getEnv("VLR_BASE_URL", "https://vlrggapi.vercel.app"),
		HDevBaseURL: getEnv("HDEV_BASE_URL", "https://api.henrikdev.xyz"),
		SeasonsURL:  getEnv("SEASONS_URL", "https://valorant-api.com/v1/seasons/competitive"),
		LoLBaseURL:  getEnv("LOL_BASE_URL", "https://esports-api.lolesports.com"),
	}

	if cfg.HDevAPIKey == "" {
		return nil, fmt.Errorf("HDEV_API_KEY is required")
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", constants.SeasonCacheTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	year, err := strconv.Atoi(getEnv("SEASON_YEAR", strconv.Itoa(constants.DefaultSeasonYear)))
	if err != nil {
		return nil, fmt.Errorf("invalid SEASON_YEAR: %w", err)
	}
	cfg.SeasonYear = year

	switch cfg.RegistryBackend {
	case RegistryFile, RegistrySQLite:
	default:
		return nil, fmt.Errorf("unknown REGISTRY_BACKEND %q", cfg.RegistryBackend)
	}

	lvl := logger.ApplyLevel(cfg.LogLevel)

	log.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", lvl.String()).
		Dur("cache_ttl", cfg.CacheTTL).
		Int("season_year", cfg.SeasonYear).
		Str("registry_backend", cfg.RegistryBackend).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
