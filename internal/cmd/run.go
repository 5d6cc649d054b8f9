// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/grovetools/mongrove/internal/config"
	"github.com/grovetools/mongrove/internal/metrics"
	"github.com/grovetools/mongrove/internal/mongo"
	"github.com/grovetools/mongrove/internal/report"
	"github.com/grovetools/mongrove/internal/selection"
	"github.com/grovetools/mongrove/internal/sync"
	"github.com/grovetools/mongrove/internal/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Starts a one-way sync from the source to the target MongoDB",
	RunE: func(cmd *cobra.Command, args []string) error {
		var databases, _ = cmd.Flags().GetStringSlice("databases")

		var cfg = config.Current
		if cfg.Source.Uri == "" {
			return sync.ErrMissingSource
		}
		if cfg.Target.Uri == "" {
			return sync.ErrMissingTarget
		}

		ctx, stop := utils.WithShutdown(cmd.Context())
		defer stop()

		source, err := mongo.Connect(ctx, cfg.Source)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		defer source.Close(context.Background())

		target, err := mongo.Connect(ctx, cfg.Target)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		defer target.Close(context.Background())

		if cfg.Metrics.Enabled {
			go metrics.ExposeMetrics(ctx)
		}

		var writer = report.NewWriter(os.Stdout)
		var reconciler = sync.New(source, target, sync.Options{
			BatchSize:         cfg.BatchSize,
			ExcludedDatabases: cfg.ExcludedDatabases,
			Observer:          writer,
		})

		candidates, err := reconciler.Candidates(ctx)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			log.Info().Err(sync.ErrNoCandidates).Msg("Nothing to do")
			fmt.Println("No databases to sync.")
			return nil
		}

		var selector selection.Selector = selection.Interactive{}
		if len(databases) > 0 {
			selector = selection.Static{Names: databases}
		}

		selected, err := selector.SelectSubset(candidates)
		if err != nil {
			if errors.Is(err, selection.ErrCancelled) {
				fmt.Println("Sync cancelled.")
				return nil
			}
			return err
		}

		runReport, err := reconciler.Run(ctx, selected)
		if runReport != nil {
			metrics.RecordRun(runReport)
		}
		if err != nil {
			if runReport != nil && len(runReport.Databases) > 0 {
				writer.Summary(runReport)
			}
			writer.Fatal(err)
			return err
		}

		writer.Summary(runReport)
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceP("databases", "d", nil, "databases to sync without prompting (must exist on the source)")
}
