/*
Package aeon is a temporal causal-graph prediction gateway.

It ingests a small weighted, time-lagged causal graph (environmental factors,
molecular intermediates, biomarkers, genetic modifiers) and produces
probabilistic, day-indexed biomarker trajectories with empirical confidence
bands and coarse risk classification.

# Concept

A causal-discovery collaborator supplies the graph; Aeon validates and
assembles it, runs a Monte Carlo ensemble of independent particles forward in
daily steps respecting per-edge effect sizes and time lags, collapses the
ensemble into per-day means and 95% confidence bands, and buckets each value
against biomarker threshold tables.

The model is a heuristic dynamical system with fixed-variance multiplicative
noise. It is deliberately documented as such: there is no posterior updating
and no do-calculus, just reproducible forward simulation under an injected
seed.

# Usage

	eng := aeon.New(
		aeon.WithSeed(42),
		aeon.WithParticles(1000),
	)

	predictions, err := eng.Predict(ctx, spec, aeon.PredictOptions{
		Baselines: map[string]float64{"CRP": 0.7},
		Drivers:   map[string]float64{"PM2.5": 4.4},
	})

The full gateway (discovery client, result cache, HTTP/MCP adapters, CLI) is
assembled in cmd/aeon.
*/
package aeon
