package storage

import (
	"context"
	"testing"
	"time"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

func TestMemoryValidationCacheTTL(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryValidationCache(5 * time.Minute)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	result := &models.ValidationResult{IsValid: true, CorrectedHobby: "guitar", Suggestions: []string{"piano"}}
	if err := cache.Set(ctx, "giutar", result); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	result.Suggestions[0] = "mutated"

	got, ok := cache.Get(ctx, "giutar")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.CorrectedHobby != "guitar" || got.Suggestions[0] != "piano" {
		t.Errorf("unexpected cached value: %+v", got)
	}

	now = now.Add(4*time.Minute + 59*time.Second)
	if _, ok := cache.Get(ctx, "giutar"); !ok {
		t.Error("entry expired too early")
	}

	now = now.Add(time.Second)
	if _, ok := cache.Get(ctx, "giutar"); ok {
		t.Error("entry should have expired at 5 minutes")
	}

	if removed := cache.Sweep(ctx); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
}

func TestMemoryValidationCacheMiss(t *testing.T) {
	cache := NewMemoryValidationCache(time.Minute)
	if _, ok := cache.Get(context.Background(), "unknown"); ok {
		t.Error("expected miss")
	}
	if err := cache.Set(context.Background(), "nil", nil); err != nil {
		t.Errorf("Set(nil) error = %v", err)
	}
}
