package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ideaflow-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	quotaKeyPrefix = "ideaflow:quota:"
	// Keys are per UTC day; the TTL only expires stale counters.
	quotaKeyTTL = 48 * time.Hour
)

// Limits are the daily generation limits per plan. Zero means unlimited.
type Limits struct {
	Free int
	Pro  int
}

// For returns the daily limit of plan. Unknown plans get the free limit.
func (l Limits) For(plan domain.Plan) int {
	if plan == domain.PlanPro {
		return l.Pro
	}
	return l.Free
}

// Quota counts generations per user and UTC day in Redis.
type Quota struct {
	client *redis.Client
	limits Limits
	now    func() time.Time
}

// NewQuota creates a Quota backed by client.
func NewQuota(client *redis.Client, limits Limits) *Quota {
	return &Quota{
		client: client,
		limits: limits,
		now:    time.Now,
	}
}

// Consume records one generation for userID and returns the resulting usage.
// Unlimited plans are not counted. A rejected generation still increments
// the counter; callers check QuotaUsage.Allowed.
func (q *Quota) Consume(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error) {
	limit := q.limits.For(plan)
	if limit == 0 {
		return domain.QuotaUsage{Limit: 0}, nil
	}

	key := q.key(userID)
	pipe := q.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, quotaKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.QuotaUsage{Limit: limit}, fmt.Errorf("failed to increment quota counter: %w", err)
	}

	return domain.QuotaUsage{Used: int(incr.Val()), Limit: limit}, nil
}

// Usage returns the current usage for userID without recording a generation.
func (q *Quota) Usage(ctx context.Context, userID uuid.UUID, plan domain.Plan) (domain.QuotaUsage, error) {
	limit := q.limits.For(plan)

	used, err := q.client.Get(ctx, q.key(userID)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return domain.QuotaUsage{Limit: limit}, fmt.Errorf("failed to read quota counter: %w", err)
	}
	return domain.QuotaUsage{Used: used, Limit: limit}, nil
}

func (q *Quota) key(userID uuid.UUID) string {
	return quotaKeyPrefix + userID.String() + ":" + q.now().UTC().Format("20060102")
}
