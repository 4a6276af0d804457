// Package simulation implements the Monte Carlo forward propagation engine
// and the ensemble aggregation that turns particles into trajectories.
//
// The model is a heuristic, uncalibrated dynamical system: fixed-variance
// multiplicative noise on top of weighted lagged propagation. It is not a
// probabilistically principled state-space model and must not be presented
// as formal Bayesian inference.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/aretw0/aeon/pkg/domain"
)

// Simulator runs independent stochastic particles forward in daily steps.
// The zero value is not usable; construct with New.
type Simulator struct {
	particles int
	workers   int
	seed      uint64
	logger    *slog.Logger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithParticles sets the ensemble size.
func WithParticles(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.particles = n
		}
	}
}

// WithSeed sets the base RNG seed. Each particle derives a sub-seeded
// generator from (seed, particle index), so results are reproducible
// regardless of how particles are scheduled across workers.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

// WithWorkers caps the particle fan-out. Defaults to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// New creates a Simulator with the reference defaults (1000 particles,
// seed 42, one worker per CPU).
func New(opts ...Option) *Simulator {
	s := &Simulator{
		particles: domain.DefaultParticles,
		workers:   runtime.NumCPU(),
		seed:      domain.DefaultSeed,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run simulates the ensemble and records every node's value at each report
// day. Particles are computationally independent; the only shared data is
// the read-only graph, so the loop fans out across workers with no locking
// on the hot path.
//
// Cancellation is coarse: a canceled ctx aborts between particles and the
// whole ensemble is discarded. Partial Monte Carlo output is meaningless.
func (s *Simulator) Run(ctx context.Context, g *domain.Graph, drivers map[string]float64, horizon int, reportDays []int) (*Ensemble, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	for _, d := range reportDays {
		if d < 0 || d > horizon {
			return nil, fmt.Errorf("report day %d outside horizon [0, %d]", d, horizon)
		}
	}

	ens := newEnsemble(g, reportDays, s.particles)

	indices := make(chan int)
	var wg sync.WaitGroup

	workers := s.workers
	if workers > s.particles {
		workers = s.particles
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range indices {
				s.simulateParticle(g, drivers, horizon, p, ens)
			}
		}()
	}

	var cancelled error
feed:
	for p := 0; p < s.particles; p++ {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case indices <- p:
		}
	}
	close(indices)
	wg.Wait()

	if cancelled != nil {
		s.logger.Warn("simulation aborted", "err", cancelled)
		return nil, cancelled
	}

	s.logger.Debug("ensemble complete",
		"particles", s.particles,
		"horizon_days", horizon,
		"nodes", g.Len(),
	)
	return ens, nil
}

// simulateParticle walks one particle over the full horizon and writes its
// report-day values into the ensemble. Each (node, day, particle) slot is
// written by exactly one goroutine, so no synchronization is needed.
func (s *Simulator) simulateParticle(g *domain.Graph, drivers map[string]float64, horizon, particle int, ens *Ensemble) {
	rng := particleRand(s.seed, particle)

	// Full per-node history for the horizon. Day 0: biomarkers sit at their
	// baseline, everything else at the neutral level 1.0. The same neutral
	// value stands in for lag lookups that reach before day 0: an effect
	// that has not propagated yet is inert, not zero.
	hist := make(map[string][]float64, g.Len())
	for _, n := range g.Nodes() {
		h := make([]float64, horizon+1)
		if n.Kind == domain.NodeKindBiomarker {
			h[0] = g.Baseline(n.ID)
		} else {
			h[0] = 1.0
		}
		hist[n.ID] = h
	}

	for day := 1; day <= horizon; day++ {
		for _, n := range g.Nodes() {
			h := hist[n.ID]
			switch n.Kind {
			case domain.NodeKindEnvironmental:
				// Drivers are fold-change multipliers relative to the
				// factor's accustomed level, ramped linearly toward the
				// supplied endpoint over the horizon. A node with no driver
				// holds the neutral level.
				v := 1.0
				if m, ok := drivers[n.ID]; ok {
					v = m * float64(day) / float64(horizon)
				}
				v *= 1 + rng.NormFloat64()*domain.EnvNoiseSigma
				h[day] = floorZero(v)

			case domain.NodeKindMolecular:
				noise := 1 + rng.NormFloat64()*domain.NodeNoiseSigma
				edges := g.Inbound(n.ID)
				if len(edges) == 0 {
					// Weak baseline noise floor for orphan intermediates.
					h[day] = floorZero(noise)
					break
				}
				h[day] = floorZero(laggedSum(g, hist, edges, day) * noise)

			case domain.NodeKindBiomarker:
				prev := h[day-1]
				edges := g.Inbound(n.ID)
				if len(edges) == 0 {
					h[day] = prev
					break
				}
				noise := 1 + rng.NormFloat64()*domain.NodeNoiseSigma
				h[day] = floorZero(prev + domain.GrowthRate*laggedSum(g, hist, edges, day)*noise)

			case domain.NodeKindGenetic:
				// Genetic nodes carry no simulated value; they act on the
				// graph only through modifier scaling at build time.
			}
		}
	}

	ens.record(particle, hist)
}

// laggedSum accumulates the signed, weighted contributions of a node's
// parents, each read at (day - lag). Lookups before day 0 are neutral 1.0.
func laggedSum(g *domain.Graph, hist map[string][]float64, edges []domain.Edge, day int) float64 {
	total := 0.0
	for _, e := range edges {
		lagDay := day - e.LagDays
		source := 1.0
		if lagDay >= 0 {
			source = hist[e.Source][lagDay]
		}
		total += e.Weight() * source
	}
	return total
}

// floorZero clamps to zero: concentrations cannot go negative.
func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
