package discovery_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/aeon/internal/adapters/discovery"
	"github.com/aretw0/aeon/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Discover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/causal_discovery", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req schema.QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how will LA air affect my inflammation?", req.Query)

		json.NewEncoder(w).Encode(schema.DiscoveryResponse{
			RequestID: req.RequestID,
			Status:    "success",
			CausalGraph: &schema.GraphSpec{
				Nodes: []schema.NodeSpec{
					{ID: "PM2.5", Kind: "environmental"},
					{ID: "CRP", Kind: "biomarker"},
				},
				Edges: []schema.EdgeSpec{
					{Source: "PM2.5", Target: "CRP", EffectSize: 0.5, TemporalLagHours: 24, Relationship: "increases"},
				},
			},
			Explanations: []string{"PM2.5 drives systemic inflammation"},
		})
	}))
	defer srv.Close()

	client := discovery.NewClient(srv.URL)
	resp, err := client.Discover(context.Background(), schema.QueryRequest{
		RequestID: "req-1",
		Query:     "how will LA air affect my inflammation?",
	})
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.CausalGraph)
	assert.Len(t, resp.CausalGraph.Nodes, 2)
	assert.Equal(t, []string{"PM2.5 drives systemic inflammation"}, resp.Explanations)
}

func TestClient_Discover_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(schema.DiscoveryResponse{
			Status: "error",
			Error:  map[string]any{"code": "NO_EVIDENCE"},
		})
	}))
	defer srv.Close()

	client := discovery.NewClient(srv.URL)
	resp, err := client.Discover(context.Background(), schema.QueryRequest{})

	// An error envelope is a legitimate outcome, not a transport failure.
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.Nil(t, resp.CausalGraph)
}

func TestClient_Discover_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := discovery.NewClient(srv.URL)
	_, err := client.Discover(context.Background(), schema.QueryRequest{})
	require.ErrorIs(t, err, discovery.ErrUnavailable)
	assert.Contains(t, err.Error(), "500")
}
