package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis is a redis-backed Store for deployments where the client state
// should survive the device (kiosk setups share one redis). It fails safe:
// a nil or unreachable client behaves like an empty store.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis-backed store.
func NewRedis(addr, password string, db int) *Redis {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Redis{client: redis.NewClient(opts)}
}

// Get returns value or nil if missing or redis unavailable.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r == nil || r.client == nil {
		return nil, nil
	}
	res, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like a missing key
		return nil, nil
	}
	return res, nil
}

// Set stores value without expiry, ignoring redis errors.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return nil
	}
	return nil
}

// Delete removes a key, ignoring redis errors.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil
	}
	return nil
}
