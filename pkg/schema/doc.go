// Package schema defines the wire-level contracts of the Aeon gateway and
// their validation.
//
// It covers three boundaries:
//
//   - the causal-discovery collaborator (GraphSpec inside DiscoveryResponse),
//   - the request boundary (QueryRequest: baselines, drivers, horizon),
//   - the response to the presentation layer (GatewayResponse).
//
// Validation is fail-fast and field-addressed: every violation is reported as
// a ValidationError naming the offending field, aggregated so a caller sees
// all problems at once rather than one per round trip. Validation runs before
// any simulation work, so expensive computation is never wasted on malformed
// input.
package schema
