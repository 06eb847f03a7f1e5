package config

import (
	"fmt"
	"os"
	"strconv"

	"lol-tracker/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey string
	Region     string
	DBPath     string
	ServerPort string
	LogLevel   string

	// Session policy knobs; defaults match the observed behavior
	// (window of 3 recent games, stop after 2 straight losses).
	StreakWindow    int
	StopThreshold   int
	NemesisMinGames int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:      getEnv("RIOT_API_KEY", ""),
		Region:          getEnv("RIOT_REGION", "EUW1"),
		DBPath:          getEnv("DB_PATH", "loltracker.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StreakWindow:    getEnvInt("STREAK_WINDOW", constants.DefaultStreakWindow),
		StopThreshold:   getEnvInt("STREAK_STOP_THRESHOLD", constants.DefaultStopThreshold),
		NemesisMinGames: getEnvInt("NEMESIS_MIN_GAMES", constants.DefaultNemesisMinGames),
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}
	if cfg.StreakWindow < 1 {
		return nil, fmt.Errorf("STREAK_WINDOW must be at least 1")
	}
	if cfg.StopThreshold < 1 {
		return nil, fmt.Errorf("STREAK_STOP_THRESHOLD must be at least 1")
	}

	logger.Info().
		Str("region", cfg.Region).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("streak_window", cfg.StreakWindow).
		Int("stop_threshold", cfg.StopThreshold).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
