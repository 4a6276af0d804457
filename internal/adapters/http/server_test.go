package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aeon"
	"github.com/aretw0/aeon/internal/adapters/discovery"
	gatewayhttp "github.com/aretw0/aeon/internal/adapters/http"
	"github.com/aretw0/aeon/internal/observability"
	"github.com/aretw0/aeon/pkg/schema"
)

type sourceFunc func(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error)

func (f sourceFunc) Discover(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
	return f(ctx, req)
}

func chainSource() sourceFunc {
	return func(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
		return schema.DiscoveryResponse{
			RequestID: req.RequestID,
			Status:    "success",
			CausalGraph: &schema.GraphSpec{
				Nodes: []schema.NodeSpec{
					{ID: "PM2.5", Kind: "environmental"},
					{ID: "CRP", Kind: "biomarker"},
				},
				Edges: []schema.EdgeSpec{
					{Source: "PM2.5", Target: "CRP", EffectSize: 0.9, TemporalLagHours: 24, Relationship: "increases"},
				},
			},
			Explanations: []string{"PM2.5 drives CRP"},
		}, nil
	}
}

func newTestHandler(t *testing.T, src sourceFunc) http.Handler {
	t.Helper()

	reg := prometheus.NewRegistry()
	engine := aeon.New(
		aeon.WithGraphSource(src),
		aeon.WithMetrics(observability.New(reg)),
		aeon.WithParticles(50),
	)
	handler, err := gatewayhttp.NewHandler(engine, gatewayhttp.WithGatherer(reg))
	require.NoError(t, err)
	return handler
}

func TestServer_Health(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Info(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "aeon-gateway", body["service"])
	assert.Equal(t, aeon.Version, body["version"])
}

func TestServer_Query(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	payload := `{
		"request_id": "req-1",
		"query": "how will LA air affect my inflammation?",
		"baseline_biomarkers": {"CRP": 0.7},
		"environmental_drivers": {"PM2.5": 4.4},
		"horizon_days": 30,
		"report_days": [0, 30],
		"seed": 42
	}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp schema.GatewayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "req-1", resp.QueryID)
	require.Contains(t, resp.Predictions, "CRP")

	crp := resp.Predictions["CRP"]
	assert.Equal(t, 0.7, crp.Baseline)
	require.Len(t, crp.Timeline, 2)
	assert.Equal(t, 0, crp.Timeline[0].Day)
	assert.Equal(t, 30, crp.Timeline[1].Day)
}

func TestServer_Query_InvalidBody(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader("{not json"))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Query_NegativeBaseline(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	payload := `{"query": "q", "baseline_biomarkers": {"CRP": -1}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader(payload))
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "baseline_biomarkers")
}

func TestServer_Query_DiscoveryDown(t *testing.T) {
	down := sourceFunc(func(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
		return schema.DiscoveryResponse{}, fmt.Errorf("%w: connection refused", discovery.ErrUnavailable)
	})
	handler := newTestHandler(t, down)

	payload := `{"query": "q", "baseline_biomarkers": {"CRP": 0.7}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader(payload))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_Query_CyclicGraph(t *testing.T) {
	cyclic := sourceFunc(func(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
		return schema.DiscoveryResponse{
			Status: "success",
			CausalGraph: &schema.GraphSpec{
				Nodes: []schema.NodeSpec{
					{ID: "A", Kind: "molecular"},
					{ID: "B", Kind: "molecular"},
				},
				Edges: []schema.EdgeSpec{
					{Source: "A", Target: "B", EffectSize: 0.5, Relationship: "activates"},
					{Source: "B", Target: "A", EffectSize: 0.5, Relationship: "activates"},
				},
			},
		}, nil
	})
	handler := newTestHandler(t, cyclic)

	payload := `{"query": "q", "baseline_biomarkers": {"CRP": 0.7}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader(payload))
	handler.ServeHTTP(rec, req)

	// A graph that is not a DAG is bad input, not a gateway fault.
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cycle")
}

func TestServer_Query_DanglingEdge(t *testing.T) {
	dangling := sourceFunc(func(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
		return schema.DiscoveryResponse{
			Status: "success",
			CausalGraph: &schema.GraphSpec{
				Nodes: []schema.NodeSpec{{ID: "PM2.5", Kind: "environmental"}},
				Edges: []schema.EdgeSpec{
					{Source: "PM2.5", Target: "ghost", EffectSize: 0.5, Relationship: "activates"},
				},
			},
		}, nil
	})
	handler := newTestHandler(t, dangling)

	payload := `{"query": "q", "baseline_biomarkers": {"CRP": 0.7}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader(payload))
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ghost")
}

func TestServer_Query_NoEvidence(t *testing.T) {
	empty := sourceFunc(func(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
		return schema.DiscoveryResponse{Status: "error", Error: map[string]any{"code": "NO_EVIDENCE"}}, nil
	})
	handler := newTestHandler(t, empty)

	payload := `{"query": "q", "baseline_biomarkers": {"CRP": 0.7}}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gateway/query", strings.NewReader(payload))
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp schema.GatewayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Predictions)
	assert.NotEmpty(t, resp.Explanations)
}

func TestServer_OpenAPI(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Aeon Gateway")
}

func TestServer_Metrics(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CORSPreflight(t *testing.T) {
	handler := newTestHandler(t, chainSource())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/gateway/query", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
