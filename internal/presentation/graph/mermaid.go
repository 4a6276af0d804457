package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/aeon/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from an assembled causal
// graph. It applies semantic styling:
// - Environmental: [/Parallelogram/]
// - Genetic: [[Subroutine]]
// - Biomarker: ((Circle))
// - Molecular (default): [Rectangle]
// Edges carry effect size and lag labels; inhibitory edges are dotted.
func GenerateMermaid(g *domain.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range g.Order() {
		node, _ := g.Node(id)
		safeID := sanitizeMermaidID(id)

		opener, closer := "[", "]"
		switch node.Kind {
		case domain.NodeKindEnvironmental:
			opener, closer = "[/", "/]"
		case domain.NodeKindGenetic:
			opener, closer = "[[", "]]"
		case domain.NodeKindBiomarker:
			opener, closer = "((", "))"
		}

		label := id
		if node.Label != "" && node.Label != id {
			label = fmt.Sprintf("%s <br/> %s", id, node.Label)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, id := range g.Order() {
		safeTo := sanitizeMermaidID(id)
		for _, e := range g.Inbound(id) {
			safeFrom := sanitizeMermaidID(e.Source)

			tag := fmt.Sprintf("%.2f", e.EffectSize)
			if e.LagDays > 0 {
				tag = fmt.Sprintf("%s / %dd", tag, e.LagDays)
			}

			arrow := fmt.Sprintf("-- \"%s\" -->", tag)
			if e.Sign < 0 {
				// Dotted line marks suppression
				arrow = fmt.Sprintf("-. \"⊣ %s\" .->", tag)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeFrom, arrow, safeTo))
		}
	}

	sb.WriteString("\n    %% Kind Styles\n")
	sb.WriteString("    classDef environmental fill:#e0f2fe,stroke:#0369a1,color:#000;\n")
	sb.WriteString("    classDef biomarker fill:#fee2e2,stroke:#b91c1c,stroke-width:2px,color:#000;\n")
	for _, id := range g.Order() {
		node, _ := g.Node(id)
		switch node.Kind {
		case domain.NodeKindEnvironmental:
			sb.WriteString(fmt.Sprintf("    class %s environmental;\n", sanitizeMermaidID(id)))
		case domain.NodeKindBiomarker:
			sb.WriteString(fmt.Sprintf("    class %s biomarker;\n", sanitizeMermaidID(id)))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
