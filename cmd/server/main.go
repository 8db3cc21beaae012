// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command server runs the Reelmatch recommendation service.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("matrix", cfg.Recommend.Pipeline.Matrix).
		Msg("starting reelmatch")

	source, cleanup, err := openSource(cfg.Catalog)
	if err != nil {
		logging.Fatal().Err(err).Msg("open catalog")
	}
	defer cleanup()

	recommender, err := recommend.New(cfg.Recommend.Pipeline)
	if err != nil {
		logging.Fatal().Err(err).Msg("configure recommender")
	}

	indexSvc := services.NewIndexService(recommender, source, cfg.Recommend.RebuildInterval)
	router := api.NewRouter(api.NewHandler(recommender, indexSvc), cfg.API)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddIndexService(indexSvc)
	tree.AddAPIService(services.NewHTTPService(server, cfg.Server.Timeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("supervisor tree exited")
	}
	logging.Info().Msg("shutdown complete")
}

// openSource selects the movie source for index builds. With the store
// enabled, CSVs are imported into BadgerDB once (when the store is empty)
// and subsequent builds read from the store; otherwise every build
// re-parses the CSVs.
func openSource(cfg config.CatalogConfig) (services.MovieSource, func(), error) {
	if !cfg.StoreEnabled {
		return catalog.CSVSource{
			MoviesPath:  cfg.MoviesPath,
			CreditsPath: cfg.CreditsPath,
		}, func() {}, nil
	}

	store, err := catalog.Open(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("close catalog store")
		}
	}

	count, err := store.Count()
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if count == 0 {
		movies, err := catalog.LoadCSV(cfg.MoviesPath, cfg.CreditsPath)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		if err := store.PutAll(movies); err != nil {
			cleanup()
			return nil, nil, err
		}
		logging.Info().Int("movies", len(movies)).Str("path", cfg.StorePath).Msg("catalog imported into store")
	}

	return store, cleanup, nil
}
