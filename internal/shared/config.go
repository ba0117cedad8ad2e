package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	DatasetPath  string
	ExportDir    string
	ChartDir     string
	TopLocations int
	RateLimitRPS int
	HTTPTimeout  time.Duration
}

func Load() Config {
	// .env is optional; system env vars always win
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		DatasetPath:  env("DATASET_PATH", "data/disneyland_reviews.csv"),
		ExportDir:    env("EXPORT_DIR", "."),
		ChartDir:     env("CHART_DIR", "charts"),
		TopLocations: atoi("TOP_LOCATIONS", 10),
		RateLimitRPS: atoi("RATE_LIMIT_RPS", 50),
		HTTPTimeout:  time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
	}
	if _, err := os.Stat(c.DatasetPath); err != nil {
		log.Warn().Str("path", c.DatasetPath).Msg("dataset file not found at configured path")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
