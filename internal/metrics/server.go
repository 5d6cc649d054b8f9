// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grovetools/mongrove/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var server *http.Server

func init() {
	var mux = http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		Timeout: config.Current.Metrics.Timeout,
	}))

	server = &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Current.Metrics.Port),
		Handler: mux,
	}
}

// ExposeMetrics serves the registry until ctx is cancelled. Intended for
// long runs watched by a scraper; short runs can skip it entirely.
func ExposeMetrics(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Info().Msgf("Metrics will be exposed on port: %d", config.Current.Metrics.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Could not expose metrics")
	}
}
