// Package preferences holds persistent PreferenceStore backends.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// DefaultKey is the Redis hash holding every preference field.
const DefaultKey = "logidash:preferences"

// RedisStore keeps preferences as fields of a single Redis hash.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

var _ dashboard.PreferenceStore = (*RedisStore)(nil)

// NewRedisStore wraps client. An empty key uses DefaultKey.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("preferences: ping %s: %w", addr, err)
	}
	return client, nil
}

// Get satisfies dashboard.PreferenceStore.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("preferences: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set satisfies dashboard.PreferenceStore.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.HSet(ctx, s.key, key, value).Err(); err != nil {
		return fmt.Errorf("preferences: set %s: %w", key, err)
	}
	return nil
}

// All returns every stored field.
func (s *RedisStore) All(ctx context.Context) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("preferences: load: %w", err)
	}
	return values, nil
}
