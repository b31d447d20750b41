package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

// VideoHistory remembers which videos were recently chosen per hobby so the
// selector can avoid immediate repeats.
type VideoHistory interface {
	Recent(ctx context.Context, hobbyKey string) ([]models.VideoHistoryEntry, error)
	Append(ctx context.Context, hobbyKey, videoID string) error
	Prune(ctx context.Context) (int, error)
}

// FileVideoHistory keeps the history in memory and mirrors it to a single
// JSON file. An empty file path disables persistence.
type FileVideoHistory struct {
	filePath string
	entries  map[string][]models.VideoHistoryEntry
	mu       sync.RWMutex
	maxAge   time.Duration
	now      func() time.Time
}

// NewFileVideoHistory loads the history file from dataDir, creating the
// directory if needed. Pass an empty dataDir for a memory-only history.
func NewFileVideoHistory(dataDir string, maxAge time.Duration) (*FileVideoHistory, error) {
	h := &FileVideoHistory{
		entries: make(map[string][]models.VideoHistoryEntry),
		maxAge:  maxAge,
		now:     time.Now,
	}
	if dataDir == "" {
		return h, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	h.filePath = filepath.Join(dataDir, "video_history.json")

	if err := h.load(); err != nil {
		return nil, fmt.Errorf("failed to load video history: %w", err)
	}
	h.prune()

	return h, nil
}

// Recent returns the entries for hobbyKey inside the trailing window.
func (h *FileVideoHistory) Recent(_ context.Context, hobbyKey string) ([]models.VideoHistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	cutoff := h.now().Add(-h.maxAge)
	var recent []models.VideoHistoryEntry
	for _, e := range h.entries[hobbyKey] {
		if e.ChosenAt.After(cutoff) {
			recent = append(recent, e)
		}
	}
	return recent, nil
}

// Append records a choice, prunes stale entries and persists.
func (h *FileVideoHistory) Append(_ context.Context, hobbyKey, videoID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[hobbyKey] = append(h.entries[hobbyKey], models.VideoHistoryEntry{
		ID:       videoID,
		ChosenAt: h.now(),
	})
	h.prune()
	return h.save()
}

// Prune drops entries older than the window and returns how many went.
func (h *FileVideoHistory) Prune(_ context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := h.prune()
	if removed == 0 {
		return 0, nil
	}
	return removed, h.save()
}

// Size returns the number of tracked entries across all hobbies.
func (h *FileVideoHistory) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, list := range h.entries {
		n += len(list)
	}
	return n
}

func (h *FileVideoHistory) prune() int {
	cutoff := h.now().Add(-h.maxAge)
	removed := 0

	for key, list := range h.entries {
		kept := list[:0]
		for _, e := range list {
			if e.ChosenAt.After(cutoff) {
				kept = append(kept, e)
			} else {
				removed++
			}
		}
		if len(kept) == 0 {
			delete(h.entries, key)
			continue
		}
		h.entries[key] = kept
	}
	return removed
}

func (h *FileVideoHistory) load() error {
	file, err := os.Open(h.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var stored map[string][]models.VideoHistoryEntry
	if err := json.NewDecoder(file).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode history data: %w", err)
	}
	for key, list := range stored {
		h.entries[key] = list
	}
	return nil
}

func (h *FileVideoHistory) save() error {
	if h.filePath == "" {
		return nil
	}

	for _, list := range h.entries {
		sort.Slice(list, func(i, j int) bool { return list[i].ChosenAt.Before(list[j].ChosenAt) })
	}

	tmp := h.filePath + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(h.entries); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	return os.Rename(tmp, h.filePath)
}

var _ VideoHistory = (*FileVideoHistory)(nil)
