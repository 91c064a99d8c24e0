package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// setAllScript writes ARGV[2..] into KEYS[1..] and applies the PX ttl in
// ARGV[1] (0 = persist) in a single server-side step.
const setAllScript = `
local ttl = tonumber(ARGV[1])
for i, key in ipairs(KEYS) do
  if ttl > 0 then
    redis.call("SET", key, ARGV[i + 1], "PX", ttl)
  else
    redis.call("SET", key, ARGV[i + 1])
  end
end
return #KEYS
`

// redisCmdable is the part of *redis.Client the repository uses.
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type RedisRepository struct {
	client redisCmdable
	prefix string
}

func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	return newRedisRepository(client, prefix)
}

func newRedisRepository(client redisCmdable, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) SetAll(ctx context.Context, values map[string][]byte, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}
	if ttl < 0 {
		ttl = 0
	}

	keys := make([]string, 0, len(values))
	args := make([]interface{}, 0, len(values)+1)
	args = append(args, ttl.Milliseconds())
	for k, v := range values {
		keys = append(keys, r.key(k))
		args = append(args, v)
	}

	if err := r.client.Eval(ctx, setAllScript, keys, args...).Err(); err != nil {
		return fmt.Errorf("failed to set kv%v: %w", keys, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete kv%v: %w", keys, err)
	}
	return nil
}
