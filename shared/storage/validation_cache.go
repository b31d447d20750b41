package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/wizqo2024/wizqo-sub002/internal/models"

	goredis "github.com/redis/go-redis/v9"
)

// ValidationCache holds recent hobby validation results keyed by the
// normalized input.
type ValidationCache interface {
	Get(ctx context.Context, key string) (*models.ValidationResult, bool)
	Set(ctx context.Context, key string, result *models.ValidationResult) error
	Sweep(ctx context.Context) int
}

type cacheEntry struct {
	result    models.ValidationResult
	expiresAt time.Time
}

type MemoryValidationCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewMemoryValidationCache(ttl time.Duration) *MemoryValidationCache {
	return &MemoryValidationCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *MemoryValidationCache) Get(_ context.Context, key string) (*models.ValidationResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	result := e.result
	result.Suggestions = append([]string(nil), e.result.Suggestions...)
	return &result, true
}

func (c *MemoryValidationCache) Set(_ context.Context, key string, result *models.ValidationResult) error {
	if result == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *result
	stored.Suggestions = append([]string(nil), result.Suggestions...)
	c.entries[key] = cacheEntry{result: stored, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Sweep evicts expired entries and returns how many were removed.
func (c *MemoryValidationCache) Sweep(_ context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// RedisValidationCache stores results with a Redis TTL, so entries are shared
// between instances and expire without sweeping.
type RedisValidationCache struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisValidationCache(ctx context.Context, addr string, ttl time.Duration) (*RedisValidationCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisValidationCache{rdb: rdb, ttl: ttl, prefix: "wizqo:validation:"}, nil
}

func (c *RedisValidationCache) Get(ctx context.Context, key string) (*models.ValidationResult, bool) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var result models.ValidationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *RedisValidationCache) Set(ctx context.Context, key string, result *models.ValidationResult) error {
	if result == nil {
		return nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}

// Sweep is a no-op; Redis expires keys itself.
func (c *RedisValidationCache) Sweep(context.Context) int { return 0 }

func (c *RedisValidationCache) Close() error { return c.rdb.Close() }

var (
	_ ValidationCache = (*MemoryValidationCache)(nil)
	_ ValidationCache = (*RedisValidationCache)(nil)
)
