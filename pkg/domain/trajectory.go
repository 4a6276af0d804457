package domain

// RiskLevel is the coarse classification of a simulated biomarker value.
type RiskLevel string

// Risk levels, ordered by severity. Unknown is used when no threshold table
// exists and the baseline does not permit a fold-change comparison.
const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown"
)

// TimelinePoint is one sampled day of a biomarker trajectory.
type TimelinePoint struct {
	Day int `json:"day"`
	// Mean is the ensemble mean, rounded to 2 decimals.
	Mean float64 `json:"mean"`
	// ConfidenceInterval is the empirical [2.5th, 97.5th] percentile band.
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	RiskLevel          RiskLevel  `json:"risk_level"`
}

// Trajectory is the prediction output for a single biomarker. It is immutable
// once returned; its shape is the contract consumed by the presentation layer.
type Trajectory struct {
	Baseline float64         `json:"baseline"`
	Timeline []TimelinePoint `json:"timeline"`
	Unit     string          `json:"unit"`
}
