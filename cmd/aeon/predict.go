package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/aeon"
	"github.com/aretw0/aeon/internal/adapters/scenario"
	"github.com/aretw0/aeon/internal/logging"
	"github.com/aretw0/aeon/internal/presentation/tui"
	"github.com/aretw0/aeon/pkg/domain"
)

func sortedKeys(m map[string]domain.Trajectory) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict [scenario.yaml]",
	Short: "Run a prediction scenario offline",
	Long: `Loads a scenario file (causal graph plus request) and runs the Monte
Carlo simulation locally, without a discovery service. Prints a rendered
report, or raw JSON with --json.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonMode, _ := cmd.Flags().GetBool("json")
		level, _ := cmd.Flags().GetString("log-level")

		if err := runPredict(args[0], jsonMode, level); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().Bool("json", false, "Print the raw JSON response instead of a report")
}

func runPredict(path string, jsonMode bool, level string) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	logger := logging.New(logging.ParseLevel(level))
	if jsonMode {
		// Keep stdout strictly JSON.
		logger = logging.NewNop()
	}

	opts := []aeon.Option{
		aeon.WithGraphSource(scenario.NewSource(sc)),
		aeon.WithLogger(logger),
	}
	if sc.Options.Seed != nil {
		opts = append(opts, aeon.WithSeed(*sc.Options.Seed))
	}
	if sc.Options.Particles > 0 {
		opts = append(opts, aeon.WithParticles(sc.Options.Particles))
	}
	if sc.Options.Workers > 0 {
		opts = append(opts, aeon.WithWorkers(sc.Options.Workers))
	}
	engine := aeon.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resp, err := engine.Query(ctx, sc.Request)
	if err != nil {
		return err
	}

	if jsonMode {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	tui.PrintBanner()

	title := sc.Name
	if title == "" {
		title = "Prediction Report"
	}
	markdown := tui.BuildReport(title, resp.Predictions, resp.Explanations)

	render := tui.NewRenderer()
	rendered, err := render(markdown)
	if err != nil {
		// Fall back to plain markdown rather than losing the report.
		rendered = markdown
	}
	fmt.Print(rendered)

	for _, id := range sortedKeys(resp.Predictions) {
		tr := resp.Predictions[id]
		if len(tr.Timeline) == 0 {
			continue
		}
		last := tr.Timeline[len(tr.Timeline)-1]
		fmt.Printf("  %s day %d: %.2f %s  %s\n", id, last.Day, last.Mean, tr.Unit, tui.RiskBadge(last.RiskLevel))
	}

	return nil
}
