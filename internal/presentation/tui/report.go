package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/aeon/pkg/domain"
)

// BuildReport assembles the markdown prediction report: one section per
// biomarker with its timeline table, followed by the discovery explanations.
// Biomarkers render in sorted order so reports diff cleanly.
func BuildReport(title string, predictions map[string]domain.Trajectory, explanations []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if len(predictions) == 0 {
		sb.WriteString("_No biomarker trajectories were produced for this query._\n")
	}

	ids := make([]string, 0, len(predictions))
	for id := range predictions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		tr := predictions[id]
		sb.WriteString(fmt.Sprintf("## %s\n\n", id))
		sb.WriteString(fmt.Sprintf("Baseline: **%.2f %s**\n\n", tr.Baseline, tr.Unit))
		sb.WriteString("| Day | Mean | 95% CI | Risk |\n")
		sb.WriteString("|----:|-----:|:------:|:-----|\n")
		for _, p := range tr.Timeline {
			sb.WriteString(fmt.Sprintf("| %d | %.2f | %.2f – %.2f | %s |\n",
				p.Day, p.Mean, p.ConfidenceInterval[0], p.ConfidenceInterval[1], p.RiskLevel))
		}
		sb.WriteString("\n")
	}

	if len(explanations) > 0 {
		sb.WriteString("## Causal reasoning\n\n")
		for _, e := range explanations {
			sb.WriteString(fmt.Sprintf("- %s\n", e))
		}
	}

	return sb.String()
}

// RiskBadge colors a risk level for terminal summary lines.
func RiskBadge(level domain.RiskLevel) string {
	p := termenv.ColorProfile()
	label := strings.ToUpper(string(level))
	switch level {
	case domain.RiskLow:
		return termenv.String(label).Foreground(p.Color("#22c55e")).Bold().String()
	case domain.RiskModerate:
		return termenv.String(label).Foreground(p.Color("#eab308")).Bold().String()
	case domain.RiskHigh:
		return termenv.String(label).Foreground(p.Color("#ef4444")).Bold().String()
	default:
		return termenv.String(label).Faint().String()
	}
}
