package schema_test

import (
	"testing"

	"github.com/aretw0/aeon/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGraph() schema.GraphSpec {
	return schema.GraphSpec{
		Nodes: []schema.NodeSpec{
			{ID: "PM2.5", Kind: "environmental", Label: "Fine particulate matter"},
			{ID: "NFKB1", Kind: "molecular", Label: "NF-kB"},
			{ID: "CRP", Kind: "biomarker", Label: "C-reactive protein"},
		},
		Edges: []schema.EdgeSpec{
			{Source: "PM2.5", Target: "NFKB1", EffectSize: 0.65, TemporalLagHours: 6, Relationship: "activates"},
			{Source: "NFKB1", Target: "CRP", EffectSize: 0.9, TemporalLagHours: 24, Relationship: "increases"},
		},
	}
}

func TestGraphSpec_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validGraph().Validate())
	})

	t.Run("Effect Size Out Of Range", func(t *testing.T) {
		g := validGraph()
		g.Edges[0].EffectSize = 1.5

		err := g.Validate()
		require.Error(t, err)

		errs := schema.ValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), "edges[0].effect_size")
	})

	t.Run("Negative Lag", func(t *testing.T) {
		g := validGraph()
		g.Edges[1].TemporalLagHours = -12

		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "temporal_lag_hours")
	})

	t.Run("Duplicate Node ID", func(t *testing.T) {
		g := validGraph()
		g.Nodes = append(g.Nodes, schema.NodeSpec{ID: "CRP", Kind: "biomarker"})

		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate node id")
	})

	t.Run("Unknown Relationship", func(t *testing.T) {
		g := validGraph()
		g.Edges[0].Relationship = "correlates"

		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "relationship")
	})

	t.Run("Modifier Magnitude", func(t *testing.T) {
		g := validGraph()
		g.GeneticModifiers = []schema.ModifierSpec{
			{Variant: "GSTM1-null", AffectedNodes: []string{"NFKB1"}, EffectType: "amplifies", Magnitude: 0},
		}

		err := g.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "magnitude")
	})

	t.Run("Multiple Failures Aggregate", func(t *testing.T) {
		g := validGraph()
		g.Edges[0].EffectSize = -0.1
		g.Edges[1].Relationship = "unknown"

		err := g.Validate()
		require.Error(t, err)
		assert.Len(t, schema.ValidationErrors(err), 2)
	})
}

func TestQueryRequest_Validate(t *testing.T) {
	t.Run("Negative Baseline", func(t *testing.T) {
		r := schema.QueryRequest{
			BaselineBiomarkers: map[string]float64{"CRP": -0.5},
		}
		err := r.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "baseline_biomarkers[CRP]")
	})

	t.Run("Defaults", func(t *testing.T) {
		r := schema.QueryRequest{}.Defaulted()
		assert.Equal(t, 90, r.HorizonDays)
		assert.Equal(t, []int{0, 30, 60, 90}, r.ReportDays)
	})

	t.Run("Report Days Clamped To Horizon", func(t *testing.T) {
		r := schema.QueryRequest{HorizonDays: 45}.Defaulted()
		assert.Equal(t, []int{0, 30}, r.ReportDays)
	})
}
