package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

// MemoryStore implements the plan and progress repositories in process. It is
// used when no database is configured and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	plans    map[string]models.StoredPlan
	progress map[string]models.Progress
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plans:    make(map[string]models.StoredPlan),
		progress: make(map[string]models.Progress),
	}
}

func progressKey(userID, planID string) string { return userID + "/" + planID }

func (m *MemoryStore) SavePlan(_ context.Context, plan *models.StoredPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[plan.ID] = *plan
	return nil
}

func (m *MemoryStore) GetPlan(_ context.Context, userID, planID string) (*models.StoredPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[planID]
	if !ok || p.UserID != userID {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) ListPlans(_ context.Context, userID string) ([]models.StoredPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	plans := []models.StoredPlan{}
	for _, p := range m.plans {
		if p.UserID == userID {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].CreatedAt.After(plans[j].CreatedAt) })
	return plans, nil
}

func (m *MemoryStore) DeletePlan(_ context.Context, userID, planID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[planID]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(m.plans, planID)
	delete(m.progress, progressKey(userID, planID))
	return nil
}

func (m *MemoryStore) SaveProgress(_ context.Context, progress *models.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[progressKey(progress.UserID, progress.PlanID)] = *progress
	return nil
}

func (m *MemoryStore) GetProgress(_ context.Context, userID, planID string) (*models.Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progress[progressKey(userID, planID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) ListProgress(_ context.Context, userID string) ([]models.Progress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Progress{}
	for _, p := range m.progress {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

var (
	_ PlanRepository     = (*MemoryStore)(nil)
	_ ProgressRepository = (*MemoryStore)(nil)
)
