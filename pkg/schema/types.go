package schema

import "github.com/aretw0/aeon/pkg/domain"

// NodeSpec is a node as delivered by the causal-discovery collaborator.
type NodeSpec struct {
	ID    string `json:"id" yaml:"id"`
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// EdgeSpec is a weighted, time-lagged causal edge.
type EdgeSpec struct {
	Source           string  `json:"source" yaml:"source"`
	Target           string  `json:"target" yaml:"target"`
	EffectSize       float64 `json:"effect_size" yaml:"effect_size"`
	TemporalLagHours int     `json:"temporal_lag_hours" yaml:"temporal_lag_hours"`
	Relationship     string  `json:"relationship" yaml:"relationship"`
}

// ModifierSpec is a genetic modifier scaling the inbound edges of the nodes
// it affects.
type ModifierSpec struct {
	Variant       string   `json:"variant" yaml:"variant"`
	AffectedNodes []string `json:"affected_nodes" yaml:"affected_nodes"`
	EffectType    string   `json:"effect_type" yaml:"effect_type"`
	Magnitude     float64  `json:"magnitude" yaml:"magnitude"`
}

// GraphSpec is the raw causal graph as received from the discovery service
// or a scenario file, before validation and assembly.
type GraphSpec struct {
	Nodes            []NodeSpec     `json:"nodes" yaml:"nodes"`
	Edges            []EdgeSpec     `json:"edges" yaml:"edges"`
	GeneticModifiers []ModifierSpec `json:"genetic_modifiers,omitempty" yaml:"genetic_modifiers,omitempty"`
}

// QueryRequest is the request boundary of the gateway.
type QueryRequest struct {
	RequestID string `json:"request_id,omitempty" yaml:"request_id,omitempty"`

	// Query is the free-text question forwarded to the discovery collaborator.
	Query string `json:"query" yaml:"query"`

	// BaselineBiomarkers seeds biomarker nodes at day 0 (values >= 0).
	BaselineBiomarkers map[string]float64 `json:"baseline_biomarkers" yaml:"baseline_biomarkers"`

	// EnvironmentalDrivers are exogenous endpoint shifts for environmental
	// nodes, ramped linearly over the horizon.
	EnvironmentalDrivers map[string]float64 `json:"environmental_drivers" yaml:"environmental_drivers"`

	HorizonDays int   `json:"horizon_days,omitempty" yaml:"horizon_days,omitempty"`
	ReportDays  []int `json:"report_days,omitempty" yaml:"report_days,omitempty"`

	// Seed overrides the engine's default RNG seed when non-nil.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Defaulted returns a copy with horizon and report days filled in where the
// caller left them unset. Report days beyond the horizon are dropped.
func (r QueryRequest) Defaulted() QueryRequest {
	if r.HorizonDays <= 0 {
		r.HorizonDays = domain.DefaultHorizonDays
	}
	if len(r.ReportDays) == 0 {
		r.ReportDays = domain.DefaultReportDays()
	}
	days := make([]int, 0, len(r.ReportDays))
	for _, d := range r.ReportDays {
		if d <= r.HorizonDays {
			days = append(days, d)
		}
	}
	r.ReportDays = days
	return r
}

// DiscoveryResponse is the envelope returned by the causal-discovery service.
type DiscoveryResponse struct {
	RequestID    string         `json:"request_id"`
	Status       string         `json:"status"` // "success" | "error"
	CausalGraph  *GraphSpec     `json:"causal_graph,omitempty"`
	Explanations []string       `json:"explanations,omitempty"`
	Error        map[string]any `json:"error,omitempty"`
}

// GatewayResponse is what the gateway returns to the presentation layer.
// The Predictions shape is a hard compatibility contract.
type GatewayResponse struct {
	QueryID     string                       `json:"query_id"`
	Predictions map[string]domain.Trajectory `json:"predictions"`
	CausalGraph GraphSpec                    `json:"causal_graph"`
	// Explanations carries the discovery service's prose, plus a note when a
	// valid but empty graph produced no timelines.
	Explanations []string `json:"explanations,omitempty"`
	Cached       bool     `json:"cached,omitempty"`
}
