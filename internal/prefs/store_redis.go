package prefs

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps preferences in a Redis hash per workspace, so they survive
// dashboard restarts and are shared across server instances.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func prefsKey(workspaceID string) string {
	return "prefs:" + workspaceID
}

func (s *RedisStore) Get(ctx context.Context, workspaceID, key string) (string, bool, error) {
	val, err := s.rdb.HGet(ctx, prefsKey(workspaceID), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, workspaceID, key, value string) error {
	return s.rdb.HSet(ctx, prefsKey(workspaceID), key, value).Err()
}

func (s *RedisStore) Clear(ctx context.Context, workspaceID, key string) error {
	return s.rdb.HDel(ctx, prefsKey(workspaceID), key).Err()
}
