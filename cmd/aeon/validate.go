package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/aeon/internal/adapters/scenario"
	"github.com/aretw0/aeon/internal/builder"
)

var validateCmd = &cobra.Command{
	Use:   "validate [scenario.yaml]",
	Short: "Check a scenario for consistency",
	Long: `Loads a scenario file and checks the causal graph: node and edge
references, effect sizes, modifier targets, and acyclicity.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scenario is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	// Load validates field-level constraints; assembling the graph
	// additionally catches cycles and dangling modifier targets.
	if _, err := builder.Build(sc.Graph, sc.Request.BaselineBiomarkers); err != nil {
		return err
	}
	return nil
}
