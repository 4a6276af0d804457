// Package builder validates and assembles raw graph specs into the internal
// representation the simulator runs on.
//
// Assembly is fail-fast: schema validation, referential checks and cycle
// detection all happen here, before any simulation work begins.
package builder

import (
	"fmt"
	"sort"

	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
)

// Build turns a validated graph spec plus biomarker baselines into a
// domain.Graph ready for simulation.
//
// Beyond schema.Validate it enforces referential integrity: every edge
// endpoint and every genetic-modifier target must name an existing node.
// An unmatched modifier target fails the build rather than silently having
// no effect; a modifier that vanishes is indistinguishable from a bug in the
// caller's data.
func Build(spec schema.GraphSpec, baseline map[string]float64) (*domain.Graph, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	nodes := make(map[string]domain.Node, len(spec.Nodes))
	for _, n := range spec.Nodes {
		nodes[n.ID] = domain.Node{ID: n.ID, Kind: n.Kind, Label: n.Label}
	}

	// Genetic modifiers scale all inbound edges of their affected nodes.
	// Collect the combined scale per target before edges are assembled.
	scale := make(map[string]float64)
	for i, m := range spec.GeneticModifiers {
		mod := domain.Modifier{
			Variant:       m.Variant,
			AffectedNodes: m.AffectedNodes,
			EffectType:    m.EffectType,
			Magnitude:     m.Magnitude,
		}
		for _, target := range m.AffectedNodes {
			if _, ok := nodes[target]; !ok {
				return nil, fmt.Errorf("genetic_modifiers[%d] (%s) targets %q: %w",
					i, m.Variant, target, domain.ErrUnknownNode)
			}
			if _, ok := scale[target]; !ok {
				scale[target] = 1.0
			}
			scale[target] *= mod.Scale()
		}
	}

	inbound := make(map[string][]domain.Edge)
	for i, e := range spec.Edges {
		if _, ok := nodes[e.Source]; !ok {
			return nil, fmt.Errorf("edges[%d].source %q: %w", i, e.Source, domain.ErrUnknownNode)
		}
		if _, ok := nodes[e.Target]; !ok {
			return nil, fmt.Errorf("edges[%d].target %q: %w", i, e.Target, domain.ErrUnknownNode)
		}

		edge := domain.Edge{
			Source:       e.Source,
			Target:       e.Target,
			EffectSize:   e.EffectSize,
			LagDays:      e.TemporalLagHours / 24,
			Relationship: e.Relationship,
			Sign:         relationshipSign(e.Relationship),
			ModifierScale: func() float64 {
				if s, ok := scale[e.Target]; ok {
					return s
				}
				return 1.0
			}(),
		}
		inbound[e.Target] = append(inbound[e.Target], edge)
	}

	order, err := topoOrder(nodes, spec.Edges)
	if err != nil {
		return nil, err
	}

	seeded := make(map[string]float64)
	for id, n := range nodes {
		if n.Kind != domain.NodeKindBiomarker {
			continue
		}
		// Missing baseline defaults to 0.
		seeded[id] = baseline[id]
	}

	return domain.NewGraph(nodes, inbound, order, seeded), nil
}

// relationshipSign derives the propagation sign from the relationship tag.
// Inhibitory edges subtract from the downstream accumulation; the zero floor
// in the simulator keeps concentrations non-negative.
func relationshipSign(relationship string) float64 {
	switch relationship {
	case domain.RelationshipInhibits, domain.RelationshipDecreases:
		return -1
	default:
		return 1
	}
}

// topoOrder computes a deterministic topological order using Kahn's
// algorithm with the ready set kept sorted by node ID. Deterministic
// tie-breaking matters: it makes simulation output reproducible for any
// DAG-shaped input, not just linear chains.
//
// Cyclic input is rejected with domain.ErrCycle instead of falling back to
// insertion order, which would silently make results order-dependent.
func topoOrder(nodes map[string]domain.Node, edges []schema.EdgeSpec) ([]string, error) {
	indegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string)
	for id := range nodes {
		indegree[id] = 0
	}
	for _, e := range edges {
		indegree[e.Target]++
		dependents[e.Source] = append(dependents[e.Source], e.Target)
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		released := false
		for _, dep := range dependents[id] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(order) != len(nodes) {
		// Name one node still stuck in the cycle so the error is actionable.
		var stuck []string
		for id, deg := range indegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("%w: involving node %q", domain.ErrCycle, stuck[0])
	}

	return order, nil
}
