package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
	"github.com/wizqo2024/wizqo-sub002/shared/monitoring"
	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

type failingJob struct{}

func (failingJob) Name() string { return "failing" }
func (failingJob) RunOnce(context.Context) (string, error) {
	return "", errors.New("boom")
}

func TestRunOnceRecordsOutcome(t *testing.T) {
	monitor := monitoring.NewMonitor(nil)
	s := New(monitor, nil)

	if err := s.RunOnce(context.Background(), failingJob{}); err == nil {
		t.Fatal("expected error from failing job")
	}

	components := monitor.Components()
	if len(components) != 1 || components[0].Consecutive != 1 {
		t.Errorf("Components() = %+v", components)
	}
}

func TestCacheSweepJob(t *testing.T) {
	ctx := context.Background()
	cache := storage.NewMemoryValidationCache(time.Nanosecond)
	_ = cache.Set(ctx, "a", &models.ValidationResult{IsValid: true})
	time.Sleep(time.Millisecond)

	summary, err := (&CacheSweepJob{Cache: cache}).RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if summary != "evicted 1 cached results" {
		t.Errorf("summary = %q", summary)
	}
}

func TestHistoryPruneJob(t *testing.T) {
	history, err := storage.NewFileVideoHistory(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewFileVideoHistory() error = %v", err)
	}
	summary, err := (&HistoryPruneJob{History: history}).RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if summary != "removed 0 expired entries" {
		t.Errorf("summary = %q", summary)
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := New(nil, nil)
	s.Add("not a cron spec", failingJob{})
	if err := s.Start(context.Background()); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}
