// Package risk maps aggregated biomarker values to coarse risk categories.
package risk

import "github.com/aretw0/aeon/pkg/domain"

// thresholds is an absolute-value table for biomarkers with established
// clinical cut points. Boundary values land in the upper bucket: a CRP of
// exactly 1.0 is moderate, exactly 3.0 is high.
type thresholds struct {
	low      float64 // below this: low
	moderate float64 // below this: moderate; at or above: high
}

var tables = map[string]thresholds{
	"CRP":  {low: 1.0, moderate: 3.0},
	"IL6":  {low: 1.8, moderate: 5.0},
	"IL-6": {low: 1.8, moderate: 5.0},
}

// Fold-change cut points for biomarkers without a known table.
const (
	foldLow      = 1.5
	foldModerate = 2.5
)

var units = map[string]string{
	"CRP":    "mg/L",
	"IL6":    "pg/mL",
	"IL-6":   "pg/mL",
	"8-OHdG": "ng/mL",
}

// Classify buckets a simulated mean value for a biomarker.
//
// Biomarkers with a threshold table are classified on absolute value.
// Everything else falls back to fold change relative to baseline; with a
// zero or unknown baseline there is nothing to compare against and the
// result is RiskUnknown rather than a division by zero.
func Classify(biomarkerID string, mean, baseline float64) domain.RiskLevel {
	if t, ok := tables[biomarkerID]; ok {
		switch {
		case mean < t.low:
			return domain.RiskLow
		case mean < t.moderate:
			return domain.RiskModerate
		default:
			return domain.RiskHigh
		}
	}

	if baseline <= 0 {
		return domain.RiskUnknown
	}

	fold := mean / baseline
	switch {
	case fold < foldLow:
		return domain.RiskLow
	case fold < foldModerate:
		return domain.RiskModerate
	default:
		return domain.RiskHigh
	}
}

// Unit returns the reporting unit for a biomarker, defaulting to "units".
func Unit(biomarkerID string) string {
	if u, ok := units[biomarkerID]; ok {
		return u
	}
	return "units"
}
