package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wizqo2024/wizqo-sub002/internal/models"
)

// PostgresStore persists plans and progress in the hosted Postgres database.
// The schema is owned by the hosting service; EnsureSchema only creates the
// tables when they are missing, for local development.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Close() { p.pool.Close() }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS hobby_plans (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	hobby      TEXT NOT NULL,
	title      TEXT NOT NULL,
	plan_data  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS hobby_plans_user_id_idx ON hobby_plans (user_id);
CREATE TABLE IF NOT EXISTS user_progress (
	user_id        TEXT NOT NULL,
	plan_id        TEXT NOT NULL,
	completed_days INTEGER[] NOT NULL DEFAULT '{}',
	current_day    INTEGER NOT NULL DEFAULT 1,
	unlocked_days  INTEGER[] NOT NULL DEFAULT '{1}',
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, plan_id)
);`

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// --- PlanRepository ---
func (p *PostgresStore) SavePlan(ctx context.Context, plan *models.StoredPlan) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO hobby_plans (id, user_id, hobby, title, plan_data, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		plan.ID, plan.UserID, plan.Hobby, plan.Title, []byte(plan.PlanData), plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetPlan(ctx context.Context, userID, planID string) (*models.StoredPlan, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, user_id, hobby, title, plan_data, created_at FROM hobby_plans WHERE id = $1 AND user_id = $2`,
		planID, userID)
	plan, err := scanPlan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return plan, nil
}

func (p *PostgresStore) ListPlans(ctx context.Context, userID string) ([]models.StoredPlan, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, user_id, hobby, title, plan_data, created_at FROM hobby_plans WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	plans := []models.StoredPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, *plan)
	}
	return plans, rows.Err()
}

// DeletePlan removes the plan and its progress in one transaction.
func (p *PostgresStore) DeletePlan(ctx context.Context, userID, planID string) error {
	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM user_progress WHERE plan_id = $1 AND user_id = $2`, planID, userID); err != nil {
		return fmt.Errorf("failed to delete plan progress: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM hobby_plans WHERE id = $1 AND user_id = $2`, planID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func scanPlan(row pgx.Row) (*models.StoredPlan, error) {
	var plan models.StoredPlan
	var data []byte
	if err := row.Scan(&plan.ID, &plan.UserID, &plan.Hobby, &plan.Title, &data, &plan.CreatedAt); err != nil {
		return nil, err
	}
	plan.PlanData = data
	return &plan, nil
}

// --- ProgressRepository ---
func (p *PostgresStore) SaveProgress(ctx context.Context, progress *models.Progress) error {
	_, err := p.pool.Exec(ctx, `
INSERT INTO user_progress (user_id, plan_id, completed_days, current_day, unlocked_days, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, plan_id) DO UPDATE SET
	completed_days = EXCLUDED.completed_days,
	current_day    = EXCLUDED.current_day,
	unlocked_days  = EXCLUDED.unlocked_days,
	updated_at     = EXCLUDED.updated_at`,
		progress.UserID, progress.PlanID, toInt32s(progress.CompletedDays), progress.CurrentDay,
		toInt32s(progress.UnlockedDays), progress.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetProgress(ctx context.Context, userID, planID string) (*models.Progress, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT user_id, plan_id, completed_days, current_day, unlocked_days, updated_at FROM user_progress WHERE user_id = $1 AND plan_id = $2`,
		userID, planID)
	progress, err := scanProgress(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

func (p *PostgresStore) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT user_id, plan_id, completed_days, current_day, unlocked_days, updated_at FROM user_progress WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	out := []models.Progress{}
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		out = append(out, *progress)
	}
	return out, rows.Err()
}

func scanProgress(row pgx.Row) (*models.Progress, error) {
	var progress models.Progress
	var completed, unlocked []int32
	var current int32
	if err := row.Scan(&progress.UserID, &progress.PlanID, &completed, &current, &unlocked, &progress.UpdatedAt); err != nil {
		return nil, err
	}
	progress.CompletedDays = fromInt32s(completed)
	progress.CurrentDay = int(current)
	progress.UnlockedDays = fromInt32s(unlocked)
	return &progress, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func fromInt32s(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

// --- Compile-time assertions ---
var _ PlanRepository = (*PostgresStore)(nil)
var _ ProgressRepository = (*PostgresStore)(nil)
