package ports

import (
	"context"

	"github.com/aretw0/aeon/pkg/schema"
)

// GraphSource supplies causal graphs for a query. The production adapter
// talks to the causal-discovery service over HTTP; the CLI uses a file-backed
// source loaded from a scenario.
type GraphSource interface {
	// Discover resolves the causal graph for a request. A response with
	// Status "error" or a nil CausalGraph is a legitimate "no evidence found"
	// outcome, not a transport failure.
	Discover(ctx context.Context, req schema.QueryRequest) (schema.DiscoveryResponse, error)
}
