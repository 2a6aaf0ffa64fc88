package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestNewKV(t *testing.T) {
	kv := NewKV()
	if kv == nil {
		t.Fatal("NewKV() returned nil")
	}
	if kv.Count() != 0 {
		t.Errorf("NewKV() should start empty, got %d keys", kv.Count())
	}
	if !kv.LastUpdate().IsZero() {
		t.Error("LastUpdate should be zero before any mutation")
	}
}

func TestSetGetRemove(t *testing.T) {
	ctx := context.Background()
	kv := NewKV()

	if _, ok, _ := kv.Get(ctx, "missing"); ok {
		t.Error("Get() on missing key should report ok=false")
	}

	if err := kv.Set(ctx, "searchHistory", `["react"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, ok, err := kv.Get(ctx, "searchHistory")
	if err != nil || !ok || v != `["react"]` {
		t.Errorf("Get() = %q, %v, %v", v, ok, err)
	}

	if err := kv.Set(ctx, "searchHistory", `["vue"]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	v, _, _ = kv.Get(ctx, "searchHistory")
	if v != `["vue"]` {
		t.Errorf("Set() should overwrite, got %q", v)
	}

	if err := kv.Remove(ctx, "searchHistory"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "searchHistory"); ok {
		t.Error("key should be gone after Remove()")
	}
	if err := kv.Remove(ctx, "searchHistory"); err != nil {
		t.Errorf("Remove() of missing key should not fail, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	kv := NewKV()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%5)
			_ = kv.Set(ctx, key, "v")
			_, _, _ = kv.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if kv.Count() != 5 {
		t.Errorf("expected 5 keys, got %d", kv.Count())
	}
}
