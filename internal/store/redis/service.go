package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a store.KV backed by Redis. Values are kept without expiry unless TTL is set.
type Store struct {
	client redis.Cmdable
	TTL    time.Duration
}

// NewStore creates a new Redis store
func NewStore(client redis.Cmdable) *Store {
	return &Store{
		client: client,
	}
}

// Get returns the value stored under name. A missing key is not an error.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	v, err := s.client.Get(ctx, Key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return v, true, nil
}

// Set stores value under name
func (s *Store) Set(ctx context.Context, name, value string) error {
	if err := s.client.Set(ctx, Key(name), value, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

// Remove deletes name
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, Key(name)).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// Names lists every key stored under the namespace.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, KeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if name, err := ExtractName(iter.Val()); err == nil {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	return names, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
