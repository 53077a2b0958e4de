// internal/embedcache/redis.go
//
// Redis backend (EMBED_CACHE=redis).

package embedcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "spybot:emb:"

// Redis stores each vector as a string value under spybot:emb:<key>.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis returns a Cache on rdb. A zero ttl keeps entries forever.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

// NewRedisFromURL parses a redis:// URL and pings the server.
func NewRedisFromURL(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("embedcache: parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("embedcache: redis ping: %w", err)
	}
	return NewRedis(rdb, ttl), nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]float32, bool, error) {
	b, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("embedcache: redis get: %w", err)
	}
	v, err := Decode(b)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, vec []float32) error {
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, Encode(vec), r.ttl).Err(); err != nil {
		return fmt.Errorf("embedcache: redis set: %w", err)
	}
	return nil
}

// Close releases the client.
func (r *Redis) Close() error { return r.rdb.Close() }
