package snapshot

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces snapshot keys inside a shared Redis instance.
const keyPrefix = "frameloom:snapshot:"

// RedisStore stores snapshots in Redis, one key per snapshot.
// Suited to short-lived shared sessions where several editors save and load
// against the same instance.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at the given address and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

// Get retrieves a snapshot by name.
func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a snapshot under the given name without expiration.
func (s *RedisStore) Set(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, keyPrefix+name, data, 0).Err()
}

// List returns all snapshot names in lexical order.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a snapshot. Deleting a missing name is a no-op.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, keyPrefix+name).Err()
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
