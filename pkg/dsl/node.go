package dsl

import (
	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
)

// NodeBuilder provides a fluent API for configuring a node and its outbound
// edges.
type NodeBuilder struct {
	node    schema.NodeSpec
	builder *Builder
}

// Label sets the human-readable label of the node.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.node.Label = label
	return n
}

// Activates adds an activating edge to the target with the given effect size.
func (n *NodeBuilder) Activates(target string, effect float64) *EdgeBuilder {
	return n.edge(target, effect, domain.RelationshipActivates)
}

// Increases adds a positive causal edge to the target.
func (n *NodeBuilder) Increases(target string, effect float64) *EdgeBuilder {
	return n.edge(target, effect, domain.RelationshipIncreases)
}

// Inhibits adds a suppressing edge to the target.
func (n *NodeBuilder) Inhibits(target string, effect float64) *EdgeBuilder {
	return n.edge(target, effect, domain.RelationshipInhibits)
}

// Decreases adds a negative causal edge to the target.
func (n *NodeBuilder) Decreases(target string, effect float64) *EdgeBuilder {
	return n.edge(target, effect, domain.RelationshipDecreases)
}

func (n *NodeBuilder) edge(target string, effect float64, relationship string) *EdgeBuilder {
	eb := &EdgeBuilder{
		edge: schema.EdgeSpec{
			Source:       n.node.ID,
			Target:       target,
			EffectSize:   effect,
			Relationship: relationship,
		},
		node: n,
	}
	n.builder.edges = append(n.builder.edges, eb)
	return eb
}

// EdgeBuilder configures the edge just added; further node calls chain
// through the source node.
type EdgeBuilder struct {
	edge schema.EdgeSpec
	node *NodeBuilder
}

// LagHours sets the temporal lag of the edge in hours.
func (e *EdgeBuilder) LagHours(hours int) *EdgeBuilder {
	e.edge.TemporalLagHours = hours
	return e
}

// Activates continues the chain with another edge from the same source.
func (e *EdgeBuilder) Activates(target string, effect float64) *EdgeBuilder {
	return e.node.Activates(target, effect)
}

// Increases continues the chain with another edge from the same source.
func (e *EdgeBuilder) Increases(target string, effect float64) *EdgeBuilder {
	return e.node.Increases(target, effect)
}

// Inhibits continues the chain with another edge from the same source.
func (e *EdgeBuilder) Inhibits(target string, effect float64) *EdgeBuilder {
	return e.node.Inhibits(target, effect)
}

// Decreases continues the chain with another edge from the same source.
func (e *EdgeBuilder) Decreases(target string, effect float64) *EdgeBuilder {
	return e.node.Decreases(target, effect)
}

// ModifierBuilder configures a genetic variant.
type ModifierBuilder struct {
	modifier schema.ModifierSpec
	builder  *Builder
}

// Amplifies scales the inbound edges of the affected nodes up by magnitude.
func (m *ModifierBuilder) Amplifies(magnitude float64, nodes ...string) *ModifierBuilder {
	m.modifier.EffectType = domain.EffectAmplifies
	m.modifier.Magnitude = magnitude
	m.modifier.AffectedNodes = append(m.modifier.AffectedNodes, nodes...)
	return m
}

// Dampens scales the inbound edges of the affected nodes down by magnitude.
func (m *ModifierBuilder) Dampens(magnitude float64, nodes ...string) *ModifierBuilder {
	m.modifier.EffectType = domain.EffectDampens
	m.modifier.Magnitude = magnitude
	m.modifier.AffectedNodes = append(m.modifier.AffectedNodes, nodes...)
	return m
}
