package campaign

import (
	"context"
	"time"

	"sautiai-dashboard/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisGate backs the one-active-campaign-per-workspace cap with the shared
// Redis concurrency scripts, so the cap holds across dashboard replicas.
// The TTL releases a leaked slot if a process dies mid-campaign.
type RedisGate struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGate(rdb *redis.Client, ttl time.Duration) *RedisGate {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisGate{rdb: rdb, ttl: ttl}
}

func gateKey(workspaceID string) string {
	return "campaign:active:" + workspaceID
}

func (g *RedisGate) Acquire(ctx context.Context, workspaceID string) (bool, error) {
	return utils.AcquireConcurrencyCap(ctx, g.rdb, gateKey(workspaceID), 1, g.ttl)
}

func (g *RedisGate) Release(ctx context.Context, workspaceID string) {
	_ = utils.ReleaseConcurrencyCap(ctx, g.rdb, gateKey(workspaceID))
}
