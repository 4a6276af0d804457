package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aeon"
	"github.com/aretw0/aeon/internal/adapters/mcp"
	"github.com/aretw0/aeon/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the prediction engine as an MCP Server over stdio, so AI agents
can run trajectory simulations and inspect causal graphs as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		particles, _ := cmd.Flags().GetInt("particles")

		logger := logging.New(logging.ParseLevel(level))
		slog.SetDefault(logger)

		opts := []aeon.Option{aeon.WithLogger(logger)}
		if particles > 0 {
			opts = append(opts, aeon.WithParticles(particles))
		}
		engine := aeon.New(opts...)

		srv := mcp.NewServer(engine)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		slog.Info("starting aeon MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Int("particles", 0, "Monte Carlo ensemble size (0 = default)")
}
