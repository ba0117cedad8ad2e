package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"park_reviews/internal/adapters/csvstore"
	server "park_reviews/internal/adapters/http_server"
	"park_reviews/internal/adapters/observability"
	"park_reviews/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// load the whole dataset up front; aggregations re-scan it per request
	rows, err := csvstore.ReadReviews(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	observability.SetDatasetRows(len(rows))

	srv := server.New(cfg.HTTPTimeout, cfg.RateLimitRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Rows: rows, TopN: cfg.TopLocations})

	log.Info().Str("addr", cfg.HTTPAddr).Int("rows", len(rows)).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return httpSrv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
