package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"recipe-recommender/internal/infrastructure/config"
)

func newTestManager(maxSize int, ttl time.Duration) *Manager {
	return NewManager(config.CacheConfig{Enabled: true, MaxSize: maxSize, TTL: ttl})
}

func TestManagerGetSet(t *testing.T) {
	m := newTestManager(10, time.Minute)
	defer m.Close()
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss on empty cache, got ok=%v err=%v", ok, err)
	}
	if err := m.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || val != "v" {
		t.Fatalf("Get = %q,%v,%v want v,true,nil", val, ok, err)
	}

	stats := m.GetStats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestManagerExpiry(t *testing.T) {
	m := newTestManager(10, time.Minute)
	defer m.Close()
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }
	_ = m.Set(ctx, "k", "v")

	m.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatalf("expired entry must not be returned")
	}
	if m.Len() != 0 {
		t.Fatalf("expired entry should be removed, len=%d", m.Len())
	}
}

func TestManagerEvictsLeastUsed(t *testing.T) {
	m := newTestManager(2, time.Hour)
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "a", "1")
	_ = m.Set(ctx, "b", "2")
	if _, ok, _ := m.Get(ctx, "a"); !ok {
		t.Fatalf("a should be cached")
	}

	_ = m.Set(ctx, "c", "3")
	if m.Len() != 2 {
		t.Fatalf("capacity exceeded: len=%d", m.Len())
	}
	if _, ok, _ := m.Get(ctx, "b"); ok {
		t.Fatalf("b was never read and should have been evicted")
	}
	if _, ok, _ := m.Get(ctx, "a"); !ok {
		t.Fatalf("a should survive eviction")
	}
}

func TestManagerOverwriteDoesNotEvict(t *testing.T) {
	m := newTestManager(1, time.Hour)
	defer m.Close()
	ctx := context.Background()

	_ = m.Set(ctx, "a", "1")
	_ = m.Set(ctx, "a", "2")
	if val, ok, _ := m.Get(ctx, "a"); !ok || val != "2" {
		t.Fatalf("overwrite failed: %q,%v", val, ok)
	}
}

func TestKey(t *testing.T) {
	k1 := Key("recommend", "fp", "ayam bawang", "20")
	k2 := Key("recommend", "fp", "ayam bawang", "20")
	k3 := Key("recommend", "fp2", "ayam bawang", "20")

	if k1 != k2 {
		t.Fatalf("key must be deterministic")
	}
	if k1 == k3 {
		t.Fatalf("different parts must give different keys")
	}
	if !strings.HasPrefix(k1, "recommend:") {
		t.Fatalf("key should carry its namespace: %s", k1)
	}
	if Key("n", "a b", "c") == Key("n", "a", "b c") {
		t.Fatalf("part boundaries must matter")
	}
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute)
	if err == nil {
		t.Fatalf("expected connection error")
	}
}
