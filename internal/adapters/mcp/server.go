// Package mcp exposes the prediction engine as an MCP server, so agent
// tooling can run trajectory simulations and inspect causal graphs without
// going through the REST gateway.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/aeon"
	"github.com/aretw0/aeon/internal/builder"
	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
)

// PredictResponse is the structured output of the predict_trajectories tool.
type PredictResponse struct {
	Predictions map[string]domain.Trajectory `json:"predictions" jsonschema_description:"One trajectory per biomarker node"`
}

// GraphSummary is the structured output of the inspect_graph tool.
type GraphSummary struct {
	Nodes      int      `json:"nodes" jsonschema_description:"Number of nodes in the graph"`
	Edges      int      `json:"edges" jsonschema_description:"Number of edges in the graph"`
	Order      []string `json:"order" jsonschema_description:"Deterministic evaluation order"`
	Biomarkers []string `json:"biomarkers" jsonschema_description:"Biomarker node IDs"`
	MaxLagDays int      `json:"max_lag_days" jsonschema_description:"Longest temporal lag in days"`
}

// Server wraps the prediction engine and exposes it as an MCP server.
type Server struct {
	engine    *aeon.Engine
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools.
func NewServer(engine *aeon.Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("aeon-mcp", aeon.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	predictTool := mcp.NewTool("predict_trajectories",
		mcp.WithDescription("Run a Monte Carlo simulation over a causal graph and return biomarker trajectories with confidence intervals and risk levels."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("JSON causal graph: nodes, edges and optional modifiers")),
		mcp.WithString("baselines", mcp.Required(), mcp.Description("JSON object of biomarker baseline values, e.g. {\"CRP\": 0.8}")),
		mcp.WithString("drivers", mcp.Description("JSON object of environmental fold-change multipliers, e.g. {\"PM2.5\": 4.4}")),
		mcp.WithNumber("horizon_days", mcp.Description("Simulation horizon in days (default 90)")),
		mcp.WithString("report_days", mcp.Description("JSON array of report days (default [0,30,60,90])")),
		mcp.WithNumber("seed", mcp.Description("RNG seed for reproducible ensembles")),
		mcp.WithOutputSchema[PredictResponse](),
	)
	s.mcpServer.AddTool(predictTool, mcp.NewStructuredToolHandler(s.handlePredict))

	inspectTool := mcp.NewTool("inspect_graph",
		mcp.WithDescription("Validate a causal graph and report its evaluation order, biomarkers and temporal depth."),
		mcp.WithString("graph", mcp.Required(), mcp.Description("JSON causal graph: nodes, edges and optional modifiers")),
		mcp.WithOutputSchema[GraphSummary](),
	)
	s.mcpServer.AddTool(inspectTool, mcp.NewStructuredToolHandler(s.handleInspect))
}

func (s *Server) handlePredict(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PredictResponse, error) {
	spec, err := decodeGraph(args)
	if err != nil {
		return PredictResponse{}, err
	}

	opts := aeon.PredictOptions{}

	baselineStr, _ := args["baselines"].(string)
	if err := json.Unmarshal([]byte(baselineStr), &opts.Baselines); err != nil {
		return PredictResponse{}, fmt.Errorf("invalid baselines: %w", err)
	}

	if driverStr, ok := args["drivers"].(string); ok && driverStr != "" {
		if err := json.Unmarshal([]byte(driverStr), &opts.Drivers); err != nil {
			return PredictResponse{}, fmt.Errorf("invalid drivers: %w", err)
		}
	}
	if horizon, ok := args["horizon_days"].(float64); ok {
		opts.HorizonDays = int(horizon)
	}
	if reportStr, ok := args["report_days"].(string); ok && reportStr != "" {
		if err := json.Unmarshal([]byte(reportStr), &opts.ReportDays); err != nil {
			return PredictResponse{}, fmt.Errorf("invalid report_days: %w", err)
		}
	}
	if seed, ok := args["seed"].(float64); ok {
		s := uint64(seed)
		opts.Seed = &s
	}

	predictions, err := s.engine.Predict(ctx, spec, opts)
	if err != nil {
		return PredictResponse{}, fmt.Errorf("prediction failed: %w", err)
	}
	return PredictResponse{Predictions: predictions}, nil
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GraphSummary, error) {
	spec, err := decodeGraph(args)
	if err != nil {
		return GraphSummary{}, err
	}

	g, err := builder.Build(spec, nil)
	if err != nil {
		return GraphSummary{}, fmt.Errorf("graph rejected: %w", err)
	}

	return GraphSummary{
		Nodes:      g.Len(),
		Edges:      len(g.Edges()),
		Order:      g.Order(),
		Biomarkers: g.Biomarkers(),
		MaxLagDays: g.MaxLagDays(),
	}, nil
}

func decodeGraph(args map[string]interface{}) (schema.GraphSpec, error) {
	graphStr, _ := args["graph"].(string)
	if graphStr == "" {
		return schema.GraphSpec{}, fmt.Errorf("graph argument is required")
	}
	var spec schema.GraphSpec
	if err := json.Unmarshal([]byte(graphStr), &spec); err != nil {
		return schema.GraphSpec{}, fmt.Errorf("invalid graph: %w", err)
	}
	return spec, nil
}
