package schema

import (
	"fmt"

	"github.com/aretw0/aeon/pkg/domain"
)

var nodeKinds = map[string]bool{
	domain.NodeKindEnvironmental: true,
	domain.NodeKindMolecular:     true,
	domain.NodeKindBiomarker:     true,
	domain.NodeKindGenetic:       true,
}

var relationships = map[string]bool{
	domain.RelationshipActivates: true,
	domain.RelationshipInhibits:  true,
	domain.RelationshipIncreases: true,
	domain.RelationshipDecreases: true,
}

// Validate checks the structural integrity of a graph spec: unique node IDs,
// known kinds and relationship tags, effect sizes in [0, 1], non-negative
// lags, and positive modifier magnitudes.
//
// Referential checks (edge endpoints, modifier targets) are the builder's
// job; this layer only knows about one record at a time.
func (g GraphSpec) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("nodes[%d].id", i),
				Reason: "required",
			})
			continue
		}
		if seen[n.ID] {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("nodes[%d].id", i),
				Reason: "duplicate node id",
				Value:  n.ID,
			})
		}
		seen[n.ID] = true

		if !nodeKinds[n.Kind] {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("nodes[%d].kind", i),
				Reason: "must be environmental, molecular, biomarker or genetic",
				Value:  n.Kind,
			})
		}
	}

	for i, e := range g.Edges {
		if e.Source == "" {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("edges[%d].source", i),
				Reason: "required",
			})
		}
		if e.Target == "" {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("edges[%d].target", i),
				Reason: "required",
			})
		}
		if e.EffectSize < 0 || e.EffectSize > 1 {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("edges[%d].effect_size", i),
				Reason: "must be in [0, 1]",
				Value:  e.EffectSize,
			})
		}
		if e.TemporalLagHours < 0 {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("edges[%d].temporal_lag_hours", i),
				Reason: "must be >= 0",
				Value:  e.TemporalLagHours,
			})
		}
		if !relationships[e.Relationship] {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("edges[%d].relationship", i),
				Reason: "must be activates, inhibits, increases or decreases",
				Value:  e.Relationship,
			})
		}
	}

	for i, m := range g.GeneticModifiers {
		if m.Variant == "" {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("genetic_modifiers[%d].variant", i),
				Reason: "required",
			})
		}
		if m.EffectType != domain.EffectAmplifies && m.EffectType != domain.EffectDampens {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("genetic_modifiers[%d].effect_type", i),
				Reason: "must be amplifies or dampens",
				Value:  m.EffectType,
			})
		}
		if m.Magnitude <= 0 {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("genetic_modifiers[%d].magnitude", i),
				Reason: "must be > 0",
				Value:  m.Magnitude,
			})
		}
		if len(m.AffectedNodes) == 0 {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("genetic_modifiers[%d].affected_nodes", i),
				Reason: "required",
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Validate checks the request boundary: non-negative baselines and a sane
// horizon/report-day combination.
func (r QueryRequest) Validate() error {
	var errs []error

	for id, v := range r.BaselineBiomarkers {
		if v < 0 {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("baseline_biomarkers[%s]", id),
				Reason: "must be >= 0",
				Value:  v,
			})
		}
	}
	if r.HorizonDays < 0 {
		errs = append(errs, &ValidationError{
			Field:  "horizon_days",
			Reason: "must be >= 0",
			Value:  r.HorizonDays,
		})
	}
	for i, d := range r.ReportDays {
		if d < 0 {
			errs = append(errs, &ValidationError{
				Field:  fmt.Sprintf("report_days[%d]", i),
				Reason: "must be >= 0",
				Value:  d,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
