// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/grovetools/mongrove/internal/config"
	"github.com/grovetools/mongrove/internal/mongo"
	"github.com/grovetools/mongrove/internal/sync"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the source databases available for syncing",
	RunE: func(cmd *cobra.Command, args []string) error {
		var includeSystem, _ = cmd.Flags().GetBool("all")

		if config.Current.Source.Uri == "" {
			return sync.ErrMissingSource
		}

		var ctx = cmd.Context()
		source, err := mongo.Connect(ctx, config.Current.Source)
		if err != nil {
			return err
		}
		defer source.Close(context.Background())

		var excluded = config.Current.ExcludedDatabases
		if includeSystem {
			excluded = nil
		}

		candidates, err := sync.Candidates(ctx, source, excluded)
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			fmt.Println("No databases found.")
			return nil
		}

		fmt.Printf("Available databases (%d):\n", len(candidates))
		for _, name := range candidates {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolP("all", "a", false, "include the system databases that are excluded from syncing")
}
