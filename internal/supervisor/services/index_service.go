// Reelmatch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MovieSource supplies the catalog records for an index build. Implemented
// by the CSV loader and the Badger-backed store.
type MovieSource interface {
	Movies() ([]recommend.Movie, error)
}

// IndexService owns the index lifecycle: it builds the index when the
// service starts, rebuilds on a fixed interval when one is configured, and
// rebuilds on demand via TriggerRebuild. Every successful build is swapped
// into the recommender atomically; failed rebuilds leave the previous index
// serving.
type IndexService struct {
	recommender *recommend.Recommender
	source      MovieSource
	interval    time.Duration
	trigger     chan struct{}
}

// NewIndexService creates the index lifecycle service. interval <= 0
// disables scheduled rebuilds.
func NewIndexService(recommender *recommend.Recommender, source MovieSource, interval time.Duration) *IndexService {
	return &IndexService{
		recommender: recommender,
		source:      source,
		interval:    interval,
		trigger:     make(chan struct{}, 1),
	}
}

// TriggerRebuild requests an asynchronous rebuild. Returns
// recommend.ErrRebuildInProgress when a rebuild is already pending or
// running.
func (s *IndexService) TriggerRebuild() error {
	select {
	case s.trigger <- struct{}{}:
		return nil
	default:
		return recommend.ErrRebuildInProgress
	}
}

// Serve implements suture.Service. The initial build failing with no prior
// index is a service failure, so the supervisor restarts the build with
// backoff; once any index is serving, later failures are logged and the old
// index stays live.
func (s *IndexService) Serve(ctx context.Context) error {
	logger := logging.WithComponent("index-service")

	if err := s.rebuild(); err != nil {
		if s.recommender.Index() == nil {
			return err
		}
		logger.Error().Err(err).Msg("startup rebuild failed, serving previous index")
	}

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			if err := s.rebuild(); err != nil {
				logger.Error().Err(err).Msg("scheduled rebuild failed")
			}
		case <-s.trigger:
			if err := s.rebuild(); err != nil {
				logger.Error().Err(err).Msg("triggered rebuild failed")
			}
		}
	}
}

// rebuild loads the catalog and runs a full pipeline build.
func (s *IndexService) rebuild() error {
	start := time.Now()

	movies, err := s.source.Movies()
	if err != nil {
		metrics.RecordIndexBuild(0, 0, 0, err)
		return err
	}

	idx, err := s.recommender.Rebuild(movies)
	if err != nil {
		metrics.RecordIndexBuild(0, 0, 0, err)
		return err
	}

	stats := idx.Stats()
	metrics.RecordIndexBuild(time.Since(start), stats.CorpusSize, stats.VocabularySize, nil)
	return nil
}

// String implements fmt.Stringer; suture uses it in event logs.
func (s *IndexService) String() string {
	return "index-service"
}
