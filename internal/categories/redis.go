package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// addScript claims the folded key and appends the display name in one step.
var addScript = redis.NewScript(`
if redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2]) == 1 then
  redis.call('RPUSH', KEYS[2], ARGV[2])
  return 1
end
return 0
`)

// RedisRegistry shares categories between console replicas through Redis.
type RedisRegistry struct {
	client *redis.Client
	prefix string
}

// NewRedisRegistry builds a registry storing its keys under prefix.
func NewRedisRegistry(client *redis.Client, prefix string) *RedisRegistry {
	if prefix == "" {
		prefix = "categories"
	}
	return &RedisRegistry{client: client, prefix: prefix}
}

func (r *RedisRegistry) indexKey() string { return r.prefix + ":index" }
func (r *RedisRegistry) orderKey() string { return r.prefix + ":order" }

// Seed adds every name that is not registered yet.
func (r *RedisRegistry) Seed(ctx context.Context, names ...string) error {
	for _, name := range names {
		if _, err := r.Add(ctx, name); err != nil && !errors.Is(err, ErrNameRequired) {
			return err
		}
	}
	return nil
}

// Add implements Registry.
func (r *RedisRegistry) Add(ctx context.Context, name string) (bool, error) {
	display, key, err := normalize(name)
	if err != nil {
		return false, err
	}
	added, err := addScript.Run(ctx, r.client, []string{r.indexKey(), r.orderKey()}, key, display).Int()
	if err != nil {
		return false, fmt.Errorf("categories: add %q: %w", display, err)
	}
	return added == 1, nil
}

// List implements Registry.
func (r *RedisRegistry) List(ctx context.Context) ([]string, error) {
	names, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("categories: list: %w", err)
	}
	return names, nil
}

// Contains implements Registry.
func (r *RedisRegistry) Contains(ctx context.Context, name string) (bool, error) {
	_, key, err := normalize(name)
	if err != nil {
		return false, nil
	}
	ok, err := r.client.HExists(ctx, r.indexKey(), key).Result()
	if err != nil {
		return false, fmt.Errorf("categories: contains: %w", err)
	}
	return ok, nil
}
