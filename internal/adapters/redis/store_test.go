package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisAdapter "github.com/aretw0/aeon/internal/adapters/redis"
	"github.com/aretw0/aeon/pkg/domain"
	"github.com/aretw0/aeon/pkg/schema"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return mr, client
}

func sampleResponse() *schema.GatewayResponse {
	return &schema.GatewayResponse{
		QueryID: "q-1",
		Predictions: map[string]domain.Trajectory{
			"CRP": {
				Baseline: 0.7,
				Unit:     "mg/L",
				Timeline: []domain.TimelinePoint{
					{Day: 0, Mean: 0.7, ConfidenceInterval: [2]float64{0.7, 0.7}, RiskLevel: domain.RiskLow},
					{Day: 90, Mean: 2.41, ConfidenceInterval: [2]float64{2.1, 2.7}, RiskLevel: domain.RiskModerate},
				},
			},
		},
	}
}

func TestStore_SaveLoadDelete(t *testing.T) {
	_, client := setup(t)
	store := redisAdapter.NewFromClient(client)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrResultNotFound))

	require.NoError(t, store.Save(ctx, "abc", sampleResponse()))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "q-1", loaded.QueryID)
	assert.Equal(t, 2.41, loaded.Predictions["CRP"].Timeline[1].Mean)
	assert.Equal(t, domain.RiskModerate, loaded.Predictions["CRP"].Timeline[1].RiskLevel)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	assert.True(t, errors.Is(err, domain.ErrResultNotFound))
}

func TestStore_TTL(t *testing.T) {
	mr, client := setup(t)
	store := redisAdapter.NewFromClient(client, redisAdapter.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", sampleResponse()))

	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "abc")
	assert.True(t, errors.Is(err, domain.ErrResultNotFound))
}

func TestLocker_SingleFlight(t *testing.T) {
	_, client := setup(t)
	locker := redisAdapter.NewLocker(client, "aeon:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "key-1", time.Minute)
	require.NoError(t, err)

	// A second caller cannot acquire while the first holds the lock.
	short, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(short, "key-1", time.Minute)
	assert.Error(t, err)

	require.NoError(t, unlock(ctx))

	unlock2, err := locker.Lock(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock2(ctx))
}
