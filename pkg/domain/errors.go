package domain

import "errors"

// ErrCycle is returned when the causal graph is not a DAG. Cyclic input is
// rejected at build time rather than simulated in an arbitrary order, which
// would make results irreproducible.
var ErrCycle = errors.New("cycle detected in causal graph")

// ErrUnknownNode is returned when an edge or modifier references a node ID
// that does not exist in the graph.
var ErrUnknownNode = errors.New("unknown node reference")

// ErrResultNotFound is returned by result stores when no cached prediction
// exists for a request key.
var ErrResultNotFound = errors.New("result not found")
