package storage

import (
	"context"
	"errors"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

// ErrNotFound is returned when a plan or progress record does not exist.
var ErrNotFound = errors.New("record not found")

type PlanRepository interface {
	SavePlan(ctx context.Context, plan *models.StoredPlan) error
	GetPlan(ctx context.Context, userID, planID string) (*models.StoredPlan, error)
	ListPlans(ctx context.Context, userID string) ([]models.StoredPlan, error)
	DeletePlan(ctx context.Context, userID, planID string) error
}

type ProgressRepository interface {
	SaveProgress(ctx context.Context, progress *models.Progress) error
	GetProgress(ctx context.Context, userID, planID string) (*models.Progress, error)
	ListProgress(ctx context.Context, userID string) ([]models.Progress, error)
}
