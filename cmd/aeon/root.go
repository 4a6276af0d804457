package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aeon",
	Short: "Aeon is a temporal causal-graph prediction engine",
	Long: `Aeon simulates how environmental and molecular drivers propagate through
a causal graph over time, producing personalized biomarker trajectories
with confidence intervals and risk levels.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
