package scheduler

import (
	"context"
	"fmt"

	"github.com/wizqo2024/wizqo-sub002/shared/storage"
)

// HistoryPruneJob drops video history entries older than the window.
type HistoryPruneJob struct {
	History storage.VideoHistory
}

func (j *HistoryPruneJob) Name() string { return "prune-video-history" }

func (j *HistoryPruneJob) RunOnce(ctx context.Context) (string, error) {
	removed, err := j.History.Prune(ctx)
	if err != nil {
		return "", fmt.Errorf("prune history: %w", err)
	}
	return fmt.Sprintf("removed %d expired entries", removed), nil
}

// CacheSweepJob evicts expired validation cache entries.
type CacheSweepJob struct {
	Cache storage.ValidationCache
}

func (j *CacheSweepJob) Name() string { return "sweep-validation-cache" }

func (j *CacheSweepJob) RunOnce(ctx context.Context) (string, error) {
	removed := j.Cache.Sweep(ctx)
	return fmt.Sprintf("evicted %d cached results", removed), nil
}
