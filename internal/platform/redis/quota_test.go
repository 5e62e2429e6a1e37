package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniRedis starts an in-process Redis server and a Quota using it.
func setupMiniRedis(t *testing.T, limits Limits) (*miniredis.Miniredis, *Quota) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	quota := NewQuota(client, limits)
	quota.now = func() time.Time { return time.Date(2025, 5, 1, 23, 30, 0, 0, time.UTC) }
	return mr, quota
}

func TestQuotaConsume(t *testing.T) {
	mr, quota := setupMiniRedis(t, Limits{Free: 2, Pro: 0})
	ctx := context.Background()
	userID := uuid.New()

	first, err := quota.Consume(ctx, userID, domain.PlanFree)
	require.NoError(t, err)
	assert.True(t, first.Allowed())
	assert.Equal(t, 1, first.Remaining())

	second, err := quota.Consume(ctx, userID, domain.PlanFree)
	require.NoError(t, err)
	assert.True(t, second.Allowed())
	assert.Equal(t, 0, second.Remaining())

	third, err := quota.Consume(ctx, userID, domain.PlanFree)
	require.NoError(t, err)
	assert.False(t, third.Allowed())
	assert.Equal(t, 0, third.Remaining())

	key := "ideaflow:quota:" + userID.String() + ":20250501"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, quotaKeyTTL, mr.TTL(key))

	usage, err := quota.Usage(ctx, userID, domain.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, 3, usage.Used)
}

func TestQuotaUnlimitedPlanIsNotCounted(t *testing.T) {
	mr, quota := setupMiniRedis(t, Limits{Free: 1, Pro: 0})
	userID := uuid.New()

	for range 5 {
		usage, err := quota.Consume(context.Background(), userID, domain.PlanPro)
		require.NoError(t, err)
		assert.True(t, usage.Allowed())
		assert.Equal(t, -1, usage.Remaining())
	}
	assert.Empty(t, mr.Keys())
}

func TestQuotaCountersArePerUserAndDay(t *testing.T) {
	_, quota := setupMiniRedis(t, Limits{Free: 1})
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	usage, err := quota.Consume(ctx, alice, domain.PlanFree)
	require.NoError(t, err)
	assert.True(t, usage.Allowed())

	usage, err = quota.Consume(ctx, bob, domain.PlanFree)
	require.NoError(t, err)
	assert.True(t, usage.Allowed(), "another user has a separate counter")

	quota.now = func() time.Time { return time.Date(2025, 5, 2, 0, 30, 0, 0, time.UTC) }
	usage, err = quota.Consume(ctx, alice, domain.PlanFree)
	require.NoError(t, err)
	assert.True(t, usage.Allowed(), "the counter resets on a new day")
}

func TestQuotaRedisUnavailable(t *testing.T) {
	mr, quota := setupMiniRedis(t, Limits{Free: 1})
	mr.Close()

	_, err := quota.Consume(context.Background(), uuid.New(), domain.PlanFree)
	assert.Error(t, err)
}

func TestLimitsFor(t *testing.T) {
	limits := Limits{Free: 5, Pro: 50}
	assert.Equal(t, 5, limits.For(domain.PlanFree))
	assert.Equal(t, 50, limits.For(domain.PlanPro))
	assert.Equal(t, 5, limits.For(domain.Plan("enterprise")))
}
