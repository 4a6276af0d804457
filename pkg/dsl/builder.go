package dsl

import (
	"fmt"

	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
)

// Builder manages the graph construction.
type Builder struct {
	order     []string
	nodes     map[string]*NodeBuilder
	edges     []*EdgeBuilder
	modifiers []*ModifierBuilder
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the graph with an explicit kind.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id, kind string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    schema.NodeSpec{ID: id, Kind: kind},
		builder: b,
	}
	b.order = append(b.order, id)
	b.nodes[id] = nb
	return nb
}

// Environmental adds an exogenous driver node (air quality, diet, stress).
func (b *Builder) Environmental(id string) *NodeBuilder {
	return b.Add(id, domain.NodeKindEnvironmental)
}

// Molecular adds a molecular intermediate node (pathways, transcripts).
func (b *Builder) Molecular(id string) *NodeBuilder {
	return b.Add(id, domain.NodeKindMolecular)
}

// Biomarker adds a measurable biomarker node.
func (b *Builder) Biomarker(id string) *NodeBuilder {
	return b.Add(id, domain.NodeKindBiomarker)
}

// Genetic adds a genetic variant and returns its modifier builder. Variants
// do not join the propagation graph; they scale the inbound edges of the
// nodes they affect.
func (b *Builder) Genetic(variant string) *ModifierBuilder {
	mb := &ModifierBuilder{
		modifier: schema.ModifierSpec{Variant: variant},
		builder:  b,
	}
	b.modifiers = append(b.modifiers, mb)
	return mb
}

// Build compiles and validates the graph spec.
func (b *Builder) Build() (schema.GraphSpec, error) {
	spec := schema.GraphSpec{
		Nodes: make([]schema.NodeSpec, 0, len(b.order)),
		Edges: make([]schema.EdgeSpec, 0, len(b.edges)),
	}
	for _, id := range b.order {
		spec.Nodes = append(spec.Nodes, b.nodes[id].node)
	}
	for _, eb := range b.edges {
		if _, ok := b.nodes[eb.edge.Target]; !ok {
			return schema.GraphSpec{}, fmt.Errorf("edge %s -> %s: %w", eb.edge.Source, eb.edge.Target, domain.ErrUnknownNode)
		}
		spec.Edges = append(spec.Edges, eb.edge)
	}
	for _, mb := range b.modifiers {
		spec.GeneticModifiers = append(spec.GeneticModifiers, mb.modifier)
	}

	if err := spec.Validate(); err != nil {
		return schema.GraphSpec{}, err
	}
	return spec, nil
}
