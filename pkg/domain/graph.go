package domain

// Graph is the validated internal representation produced by the builder.
// It is immutable after construction and safe for concurrent readers: the
// simulator only ever walks it, never mutates it.
type Graph struct {
	nodes    map[string]Node
	inbound  map[string][]Edge
	order    []string
	baseline map[string]float64
}

// NewGraph assembles a Graph from already-validated parts. Callers outside
// the builder should not construct graphs directly; the builder guarantees
// acyclicity and referential integrity before this is called.
func NewGraph(nodes map[string]Node, inbound map[string][]Edge, order []string, baseline map[string]float64) *Graph {
	return &Graph{
		nodes:    nodes,
		inbound:  inbound,
		order:    order,
		baseline: baseline,
	}
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Order returns the deterministic topological evaluation order.
// Ties are broken by node ID, so the order is stable across runs.
func (g *Graph) Order() []string {
	return g.order
}

// Inbound returns the edges terminating at the given node, with modifier
// scales already folded in.
func (g *Graph) Inbound(id string) []Edge {
	return g.inbound[id]
}

// Baseline returns the seeded baseline value for a biomarker node.
// Biomarkers without a supplied baseline default to 0.
func (g *Graph) Baseline(id string) float64 {
	return g.baseline[id]
}

// Biomarkers returns the IDs of all biomarker nodes in evaluation order.
func (g *Graph) Biomarkers() []string {
	var ids []string
	for _, id := range g.order {
		if g.nodes[id].Kind == NodeKindBiomarker {
			ids = append(ids, id)
		}
	}
	return ids
}

// Nodes returns all nodes in evaluation order. Used for introspection and
// visualization (e.g. the 'aeon graph' command).
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns every edge in the graph, grouped by target in evaluation order.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, id := range g.order {
		out = append(out, g.inbound[id]...)
	}
	return out
}

// MaxLagDays returns the longest edge lag in the graph. The simulator uses it
// to size per-node history buffers.
func (g *Graph) MaxLagDays() int {
	max := 0
	for _, edges := range g.inbound {
		for _, e := range edges {
			if e.LagDays > max {
				max = e.LagDays
			}
		}
	}
	return max
}
