/*
Package domain contains the core domain models of the Aeon engine.

It defines the fundamental entities of the temporal causal model: graph Nodes
and weighted, time-lagged Edges, genetic Modifiers, and the prediction
Trajectory output. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: A factor in the causal graph (environmental, molecular, biomarker, genetic).
  - Edge: A directed causal influence with an effect size and a propagation lag.
  - Graph: The validated, acyclic internal graph with a deterministic evaluation order.
  - Trajectory: The per-biomarker prediction output (mean, confidence band, risk level).
*/
package domain
