// Package http exposes the gateway over a REST API: query submission,
// health, service info, prometheus metrics and the OpenAPI contract.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/aeon"
	"github.com/aretw0/aeon/internal/adapters/discovery"
	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine is the surface of the gateway core the HTTP layer depends on.
type Engine interface {
	Query(ctx context.Context, req schema.QueryRequest) (*schema.GatewayResponse, error)
}

// Server wires the gateway engine to the chi router.
type Server struct {
	engine   Engine
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the prometheus registry served at /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler builds the gateway HTTP handler. The embedded OpenAPI document
// is parsed and validated up front so a malformed contract fails at startup
// rather than on the first /openapi.yaml hit.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	s := &Server{
		engine:   engine,
		logger:   slog.Default(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("parsing openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	r := chi.NewRouter()
	r.Use(cors)

	r.Get("/health", s.getHealth)
	r.Get("/", s.getInfo)
	r.Post("/api/v1/gateway/query", s.postQuery)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return r, nil
}

// cors mirrors the permissive policy of the upstream deployment; the gateway
// sits behind its own ingress.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "aeon-gateway",
	})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "aeon-gateway",
		"version": aeon.Version,
		"endpoints": map[string]string{
			"query":   "/api/v1/gateway/query",
			"health":  "/health",
			"metrics": "/metrics",
			"docs":    "/swagger",
		},
	})
}

func (s *Server) postQuery(w http.ResponseWriter, r *http.Request) {
	var req schema.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	resp, err := s.engine.Query(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		s.logger.Error("query failed", "status", status, "err", err)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps engine errors onto HTTP status codes: bad input is the
// caller's fault, an unreachable collaborator is a gateway problem. A cyclic
// or dangling graph counts as bad input wherever it came from.
func statusFor(err error) int {
	var verr *schema.ValidationError
	var aerr *schema.AggregateError
	switch {
	case errors.As(err, &verr), errors.As(err, &aerr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCycle), errors.Is(err, domain.ErrUnknownNode):
		return http.StatusBadRequest
	case errors.Is(err, discovery.ErrUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Aeon Gateway API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
