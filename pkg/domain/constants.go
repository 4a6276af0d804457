package domain

// Simulation defaults. These mirror the reference calibration of the model
// and are overridable through engine options or per-request parameters.
const (
	// DefaultHorizonDays is the forward prediction window.
	DefaultHorizonDays = 90
	// DefaultParticles is the Monte Carlo ensemble size.
	DefaultParticles = 1000
	// DefaultSeed keeps one-shot runs reproducible unless the caller opts out.
	DefaultSeed = 42

	// GrowthRate controls how fast cumulative biomarker drift accrues per day.
	GrowthRate = 0.02
	// EnvNoiseSigma is the multiplicative noise on environmental nodes.
	EnvNoiseSigma = 0.05
	// NodeNoiseSigma is the multiplicative noise on molecular/biomarker nodes.
	NodeNoiseSigma = 0.1
)

// DefaultReportDays are the days sampled into the output timeline when the
// caller does not ask for specific ones.
func DefaultReportDays() []int {
	return []int{0, 30, 60, 90}
}
