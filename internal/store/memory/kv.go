package memory

import (
	"context"
	"sync"
	"time"
)

// KV provides in-memory keyed storage.
// It acts as a fallback when Redis is not configured.
type KV struct {
	mu        sync.RWMutex
	values    map[string]string
	updatedAt time.Time
}

// NewKV creates an empty store
func NewKV() *KV {
	return &KV{values: make(map[string]string)}
}

// Get retrieves a value by key
func (kv *KV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	v, ok := kv.values[key]
	return v, ok, nil
}

// Set adds or replaces a value
func (kv *KV) Set(_ context.Context, key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	kv.values[key] = value
	kv.updatedAt = time.Now()
	return nil
}

// Remove deletes a key. Missing keys are ignored.
func (kv *KV) Remove(_ context.Context, key string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	delete(kv.values, key)
	kv.updatedAt = time.Now()
	return nil
}

// Count returns the number of stored keys
func (kv *KV) Count() int {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	return len(kv.values)
}

// LastUpdate returns the time of the last mutation
func (kv *KV) LastUpdate() time.Time {
	kv.mu.RLock()
	defer kv.mu.RUnlock()

	return kv.updatedAt
}
