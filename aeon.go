package aeon

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/aeon/internal/builder"
	"github.com/aretw0/aeon/internal/observability"
	"github.com/aretw0/aeon/internal/risk"
	"github.com/aretw0/aeon/internal/simulation"
	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/ports"
	"github.com/aretw0/aeon/pkg/schema"
)

// Version of the aeon module.
var Version = "0.1.0"

// noEvidenceNote explains an empty but well-formed response. "No evidence
// found" is a legitimate outcome of causal discovery, not an error.
const noEvidenceNote = "no causal path from the supplied drivers to any biomarker was found; timelines are empty"

// Engine is the high-level entry point for the Aeon library. It wraps the
// graph builder, the Monte Carlo simulator, the aggregator and the risk
// classifier, and optionally a graph source and a result cache.
type Engine struct {
	source    ports.GraphSource
	store     ports.ResultStore
	locker    ports.Locker
	metrics   *observability.Metrics
	logger    *slog.Logger
	particles int
	workers   int
	seed      uint64
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithGraphSource injects the causal-discovery collaborator used by Query.
func WithGraphSource(s ports.GraphSource) Option {
	return func(e *Engine) {
		e.source = s
	}
}

// WithResultStore enables caching of finished predictions.
func WithResultStore(s ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker enables single-flight locking around simulations so identical
// concurrent queries run the ensemble once.
func WithLocker(l ports.Locker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithMetrics registers prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithParticles sets the Monte Carlo ensemble size.
func WithParticles(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.particles = n
		}
	}
}

// WithWorkers caps the simulation fan-out.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSeed sets the default RNG seed. Requests may override it per call.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New initializes an Engine. The zero configuration is fully usable for
// one-shot Predict calls; Query additionally needs a graph source.
func New(opts ...Option) *Engine {
	e := &Engine{
		particles: domain.DefaultParticles,
		seed:      domain.DefaultSeed,
		logger:    slog.Default(),
		metrics:   observability.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PredictOptions carries the request-boundary inputs of a simulation.
type PredictOptions struct {
	// Baselines seeds biomarker nodes at day 0.
	Baselines map[string]float64
	// Drivers are fold-change multipliers for environmental nodes, ramped
	// linearly toward the supplied endpoint over the horizon.
	Drivers map[string]float64
	// HorizonDays defaults to domain.DefaultHorizonDays.
	HorizonDays int
	// ReportDays defaults to domain.DefaultReportDays. Days beyond the
	// horizon are dropped.
	ReportDays []int
	// Seed overrides the engine default when non-nil.
	Seed *uint64
}

func (o PredictOptions) defaulted() PredictOptions {
	if o.HorizonDays <= 0 {
		o.HorizonDays = domain.DefaultHorizonDays
	}
	if len(o.ReportDays) == 0 {
		o.ReportDays = domain.DefaultReportDays()
	}
	days := make([]int, 0, len(o.ReportDays))
	for _, d := range o.ReportDays {
		if d <= o.HorizonDays {
			days = append(days, d)
		}
	}
	o.ReportDays = days
	return o
}

// Predict validates and assembles the graph, runs the ensemble, and returns
// one trajectory per biomarker node. It is a one-shot call: no state is
// retained between invocations.
func (e *Engine) Predict(ctx context.Context, spec schema.GraphSpec, opts PredictOptions) (map[string]domain.Trajectory, error) {
	opts = opts.defaulted()

	g, err := builder.Build(spec, opts.Baselines)
	if err != nil {
		return nil, err
	}

	seed := e.seed
	if opts.Seed != nil {
		seed = *opts.Seed
	}

	simOpts := []simulation.Option{
		simulation.WithParticles(e.particles),
		simulation.WithSeed(seed),
		simulation.WithLogger(e.logger),
	}
	if e.workers > 0 {
		simOpts = append(simOpts, simulation.WithWorkers(e.workers))
	}
	sim := simulation.New(simOpts...)

	start := time.Now()
	ens, err := sim.Run(ctx, g, opts.Drivers, opts.HorizonDays, opts.ReportDays)
	if err != nil {
		return nil, err
	}
	e.metrics.SimulationSeconds.Observe(time.Since(start).Seconds())
	e.metrics.ParticlesTotal.Add(float64(e.particles))

	biomarkers := g.Biomarkers()
	summary, err := simulation.Summarize(ens, biomarkers)
	if err != nil {
		return nil, fmt.Errorf("aggregation invariant violated: %w", err)
	}

	out := make(map[string]domain.Trajectory, len(biomarkers))
	for _, id := range biomarkers {
		baseline := g.Baseline(id)
		points := summary[id]

		timeline := make([]domain.TimelinePoint, len(points))
		for i, p := range points {
			timeline[i] = domain.TimelinePoint{
				Day:                p.Day,
				Mean:               round2(p.Mean),
				ConfidenceInterval: [2]float64{round2(p.Low), round2(p.High)},
				RiskLevel:          risk.Classify(id, p.Mean, baseline),
			}
		}

		out[id] = domain.Trajectory{
			Baseline: baseline,
			Timeline: timeline,
			Unit:     risk.Unit(id),
		}
	}
	return out, nil
}

// Query runs the full gateway flow: discover the causal graph, consult the
// result cache, simulate, classify, and assemble the response.
func (e *Engine) Query(ctx context.Context, req schema.QueryRequest) (*schema.GatewayResponse, error) {
	if e.source == nil {
		return nil, errors.New("no graph source configured")
	}
	if err := req.Validate(); err != nil {
		e.metrics.Queries.WithLabelValues("invalid").Inc()
		return nil, err
	}
	req = req.Defaulted()

	disc, err := e.source.Discover(ctx, req)
	if err != nil {
		e.metrics.Queries.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("causal discovery failed: %w", err)
	}

	resp := &schema.GatewayResponse{
		QueryID:      req.RequestID,
		Predictions:  map[string]domain.Trajectory{},
		Explanations: disc.Explanations,
	}
	if resp.QueryID == "" {
		resp.QueryID = disc.RequestID
	}

	if disc.Status != "success" || disc.CausalGraph == nil {
		// The collaborator found nothing. A well-formed empty response, not
		// an error.
		e.logger.Info("discovery returned no graph", "status", disc.Status)
		e.metrics.Queries.WithLabelValues("empty").Inc()
		resp.Explanations = append(resp.Explanations, noEvidenceNote)
		return resp, nil
	}
	resp.CausalGraph = *disc.CausalGraph

	key := requestKey(*disc.CausalGraph, req, e.seed, e.particles)

	if cached, ok := e.loadCached(ctx, key); ok {
		cached.QueryID = resp.QueryID
		return cached, nil
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, key, 2*time.Minute)
		if err != nil {
			return nil, fmt.Errorf("acquiring simulation lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				e.logger.Warn("releasing simulation lock failed", "err", err)
			}
		}()

		// The previous holder fills the cache before releasing the lock, so
		// a waiter that blocked here usually finds the result ready. Without
		// this recheck the lock would serialize duplicate work instead of
		// eliminating it.
		if cached, ok := e.loadCached(ctx, key); ok {
			cached.QueryID = resp.QueryID
			return cached, nil
		}
	}

	predictions, err := e.Predict(ctx, *disc.CausalGraph, PredictOptions{
		Baselines:   req.BaselineBiomarkers,
		Drivers:     req.EnvironmentalDrivers,
		HorizonDays: req.HorizonDays,
		ReportDays:  req.ReportDays,
		Seed:        req.Seed,
	})
	if err != nil {
		e.metrics.Queries.WithLabelValues("error").Inc()
		return nil, err
	}
	resp.Predictions = predictions

	if len(predictions) == 0 {
		resp.Explanations = append(resp.Explanations, noEvidenceNote)
	}

	if e.store != nil {
		if err := e.store.Save(ctx, key, resp); err != nil {
			e.logger.Warn("result cache save failed", "err", err)
		}
	}

	e.metrics.Queries.WithLabelValues("ok").Inc()
	return resp, nil
}

// loadCached consults the result store for a finished ensemble. A cache
// miss and a broken cache both report false; the latter is logged, since a
// degraded cache must not take the gateway down.
func (e *Engine) loadCached(ctx context.Context, key string) (*schema.GatewayResponse, bool) {
	if e.store == nil {
		return nil, false
	}
	cached, err := e.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrResultNotFound) {
			e.logger.Warn("result cache load failed", "err", err)
		}
		return nil, false
	}
	e.metrics.CacheHits.Inc()
	e.metrics.Queries.WithLabelValues("ok").Inc()
	cached.Cached = true
	return cached, true
}

// requestKey derives the stable cache key of a query: a digest over the
// graph spec and every input that changes the ensemble output. Two requests
// with equal keys produce byte-identical predictions under a fixed seed.
func requestKey(spec schema.GraphSpec, req schema.QueryRequest, seed uint64, particles int) string {
	seedVal := seed
	if req.Seed != nil {
		seedVal = *req.Seed
	}
	payload := struct {
		Graph     schema.GraphSpec   `json:"graph"`
		Baselines map[string]float64 `json:"baselines"`
		Drivers   map[string]float64 `json:"drivers"`
		Horizon   int                `json:"horizon"`
		Report    []int              `json:"report"`
		Seed      uint64             `json:"seed"`
		Particles int                `json:"particles"`
	}{spec, req.BaselineBiomarkers, req.EnvironmentalDrivers, req.HorizonDays, req.ReportDays, seedVal, particles}

	// Map keys marshal in sorted order, so the digest is deterministic.
	data, _ := json.Marshal(payload)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
