/*
Package ports defines the driven ports (interfaces) of the Aeon gateway.

These interfaces decouple the core engine from external implementations,
allowing the gateway to work with different graph sources, result stores and
lock providers.

# Key Interfaces

  - GraphSource: Supplies causal graphs (e.g. the discovery service or a scenario file).
  - ResultStore: Caches finished predictions keyed by a stable request hash.
  - Locker: Single-flight locking so identical concurrent queries simulate once.
*/
package ports
