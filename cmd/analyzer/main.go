package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"park_reviews/internal/adapters/charts"
	"park_reviews/internal/adapters/csvstore"
	"park_reviews/internal/adapters/export"
	"park_reviews/internal/adapters/observability"
	"park_reviews/internal/adapters/tui"
	"park_reviews/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	rows, err := csvstore.ReadReviews(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}

	exporter, err := export.New(cfg.ExportDir)
	if err != nil {
		log.Fatal().Err(err).Msg("exporter init failed")
	}
	renderer, err := charts.New(cfg.ChartDir)
	if err != nil {
		log.Fatal().Err(err).Msg("chart renderer init failed")
	}

	tui.New(os.Stdin, os.Stdout, rows, exporter, renderer, cfg.TopLocations).Run()
}
