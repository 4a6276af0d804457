// Package discovery implements the client for the external causal-discovery
// service, the collaborator that turns a question plus user context into a
// causal graph.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/aeon/pkg/schema"
)

const discoveryPath = "/api/v1/causal_discovery"

// ErrUnavailable marks transport-level failures reaching the discovery
// service, so callers can distinguish "collaborator down" from bad input.
var ErrUnavailable = errors.New("discovery service unavailable")

// Client implements ports.GraphSource over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

// WithTimeout sets the per-request timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a discovery client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover posts the query to the discovery service and decodes the graph
// envelope. An envelope with Status "error" is returned as-is: "no evidence
// found" is the collaborator's call to make, not a transport failure.
func (c *Client) Discover(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error) {
	endpoint := c.baseURL + discoveryPath

	payload, err := json.Marshal(req)
	if err != nil {
		return schema.DiscoveryResponse{}, fmt.Errorf("encoding discovery request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return schema.DiscoveryResponse{}, fmt.Errorf("building discovery request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("querying discovery service", "endpoint", endpoint, "request_id", req.RequestID)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return schema.DiscoveryResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return schema.DiscoveryResponse{}, fmt.Errorf("%w: status %d: %s",
			ErrUnavailable, httpResp.StatusCode, strings.TrimSpace(string(body)))
	}

	var resp schema.DiscoveryResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return schema.DiscoveryResponse{}, fmt.Errorf("decoding discovery response: %w", err)
	}

	if resp.Status == "success" && resp.CausalGraph != nil {
		c.logger.Info("received causal graph",
			"nodes", len(resp.CausalGraph.Nodes),
			"edges", len(resp.CausalGraph.Edges),
		)
	} else {
		c.logger.Warn("discovery returned no graph", "status", resp.Status, "err", resp.Error)
	}

	return resp, nil
}
