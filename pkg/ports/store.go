package ports

import (
	"context"
	"time"

	"github.com/aretw0/aeon/pkg/schema"
)

// ResultStore caches finished gateway responses keyed by a stable hash of the
// request (graph spec, baselines, drivers, horizon, report days, seed,
// particle count). A Monte Carlo run under a fixed seed is deterministic, so
// cached entries are exact replays, not approximations.
type ResultStore interface {
	// Save persists a response under the given key.
	Save(ctx context.Context, key string, resp *schema.GatewayResponse) error

	// Load retrieves a cached response.
	// Returns domain.ErrResultNotFound when no entry exists.
	Load(ctx context.Context, key string) (*schema.GatewayResponse, error)

	// Delete removes a cached response.
	Delete(ctx context.Context, key string) error
}

// UnlockFunc releases a held lock.
type UnlockFunc func(ctx context.Context) error

// Locker provides single-flight locking around expensive simulations so that
// identical concurrent queries run the ensemble once.
type Locker interface {
	// Lock acquires the lock for a request key, blocking until acquired or
	// until ctx is done.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
