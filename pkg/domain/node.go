package domain

// NodeKind constants define how the simulator computes a node's value.
const (
	// NodeKindEnvironmental is an exogenous factor driven by caller input (e.g. PM2.5).
	NodeKindEnvironmental = "environmental"
	// NodeKindMolecular is an intermediate signal computed from its parents.
	NodeKindMolecular = "molecular"
	// NodeKindBiomarker accumulates drift from its parents on top of a baseline.
	NodeKindBiomarker = "biomarker"
	// NodeKindGenetic marks a variant node; these carry no simulated value and
	// act on the graph only through Modifier scaling.
	NodeKindGenetic = "genetic"
)

// Relationship tags carried on edges. Inhibitory tags negate the effective
// edge weight during propagation.
const (
	RelationshipActivates = "activates"
	RelationshipInhibits  = "inhibits"
	RelationshipIncreases = "increases"
	RelationshipDecreases = "decreases"
)

// Node represents a single factor in the causal graph.
type Node struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	// Label is display-only metadata; the engine never branches on it.
	Label string `json:"label,omitempty"`
}

// Edge represents a directed causal influence between two nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`

	// EffectSize is the base weight of the influence, in [0, 1].
	EffectSize float64 `json:"effect_size"`

	// LagDays is the propagation delay in whole days. Sub-day structure is
	// intentionally collapsed: the builder floors temporal_lag_hours / 24.
	LagDays int `json:"lag_days"`

	// Relationship is the descriptive tag (activates, inhibits, ...).
	Relationship string `json:"relationship"`

	// Sign is derived from Relationship: -1 for inhibits/decreases, +1 otherwise.
	Sign float64 `json:"-"`

	// ModifierScale is the product of all genetic-modifier multipliers bound to
	// the target node. 1.0 when no modifier applies.
	ModifierScale float64 `json:"-"`
}

// Weight returns the effective signed weight the simulator propagates along
// this edge: sign * effect size * genetic-modifier scale.
func (e Edge) Weight() float64 {
	return e.Sign * e.EffectSize * e.ModifierScale
}

// Modifier represents a genetic variant that scales the inbound edges of the
// nodes it affects.
type Modifier struct {
	Variant       string   `json:"variant"`
	AffectedNodes []string `json:"affected_nodes"`
	// EffectType is "amplifies" or "dampens".
	EffectType string `json:"effect_type"`
	// Magnitude is a positive multiplier. For "dampens" the builder inverts it.
	Magnitude float64 `json:"magnitude"`
}

// Modifier effect types.
const (
	EffectAmplifies = "amplifies"
	EffectDampens   = "dampens"
)

// Scale returns the multiplicative factor this modifier applies to inbound
// edges of its affected nodes.
func (m Modifier) Scale() float64 {
	if m.EffectType == EffectDampens {
		return 1.0 / m.Magnitude
	}
	return m.Magnitude
}
