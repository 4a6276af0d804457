package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aeon/internal/adapters/scenario"
	"github.com/aretw0/aeon/internal/builder"
	"github.com/aretw0/aeon/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [scenario.yaml]",
	Short: "Export the causal graph visualization",
	Long:  `Loads a scenario and outputs a Mermaid diagram (graph TD) of its causal graph.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc, err := scenario.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading scenario: %v\n", err)
			os.Exit(1)
		}

		g, err := builder.Build(sc.Graph, sc.Request.BaselineBiomarkers)
		if err != nil {
			fmt.Printf("Error assembling graph: %v\n", err)
			os.Exit(1)
		}

		// Generate and print Mermaid graph
		fmt.Print(graph.GenerateMermaid(g))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
