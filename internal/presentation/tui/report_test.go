package tui_test

import (
	"strings"
	"testing"

	"github.com/aretw0/aeon/internal/presentation/tui"
	"github.com/aretw0/aeon/pkg/domain"
)

func TestBuildReport(t *testing.T) {
	predictions := map[string]domain.Trajectory{
		"IL-6": {
			Baseline: 1.2,
			Unit:     "pg/mL",
			Timeline: []domain.TimelinePoint{
				{Day: 0, Mean: 1.2, ConfidenceInterval: [2]float64{1.2, 1.2}, RiskLevel: domain.RiskLow},
			},
		},
		"CRP": {
			Baseline: 0.7,
			Unit:     "mg/L",
			Timeline: []domain.TimelinePoint{
				{Day: 0, Mean: 0.7, ConfidenceInterval: [2]float64{0.7, 0.7}, RiskLevel: domain.RiskLow},
				{Day: 90, Mean: 2.49, ConfidenceInterval: [2]float64{2.1, 2.9}, RiskLevel: domain.RiskModerate},
			},
		},
	}

	out := tui.BuildReport("Inflammation Forecast", predictions, []string{"PM2.5 drives systemic inflammation"})

	if !strings.HasPrefix(out, "# Inflammation Forecast\n") {
		t.Errorf("missing title:\n%s", out)
	}
	// Sorted section order: CRP before IL-6.
	if strings.Index(out, "## CRP") > strings.Index(out, "## IL-6") {
		t.Errorf("sections not sorted:\n%s", out)
	}
	for _, want := range []string{
		"Baseline: **0.70 mg/L**",
		"| 90 | 2.49 | 2.10 – 2.90 | moderate |",
		"- PM2.5 drives systemic inflammation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestBuildReport_Empty(t *testing.T) {
	out := tui.BuildReport("Forecast", nil, nil)
	if !strings.Contains(out, "No biomarker trajectories") {
		t.Errorf("empty report missing placeholder:\n%s", out)
	}
}
