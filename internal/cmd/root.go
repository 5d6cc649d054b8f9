package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "mongrove",
	Short: "Mongrove is a tiny tool for converging a target MongoDB toward a source, one way, without ever deleting.",
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.AddCommand(initCmd, listCmd, runCmd)
}
