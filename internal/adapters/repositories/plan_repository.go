// Package repositories implements ports.PlanRepository: a durable,
// Postgres-backed audit trail of solved plans, independent of the
// ephemeral Redis ports.PlanCache. Grounded on the teacher's pgx-based
// dbtool wiring and on shivamshaw23-Hintro's pgxpool.Pool-based
// repository shape (internal/repository/booking_repository.go).
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/platform/obs"
	"pax-route-planner/internal/ports"
)

// PgPlanRepository is a pgxpool.Pool-backed implementation of
// ports.PlanRepository.
type PgPlanRepository struct {
	Pool *pgxpool.Pool
}

func NewPgPlanRepository(pool *pgxpool.Pool) *PgPlanRepository {
	return &PgPlanRepository{Pool: pool}
}

// InitPlanSchema creates the solved_plans table if it does not exist.
func InitPlanSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS solved_plans (
		key TEXT PRIMARY KEY,
		solved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		route_count INTEGER NOT NULL,
		total_nm DOUBLE PRECISION NOT NULL,
		plan_json JSONB NOT NULL
	);
	`)
	if err != nil {
		return fmt.Errorf("init plan schema: %w", err)
	}
	return nil
}

// SavePlan records one solved plan, keyed by its deterministic scenario
// hash (spec §5 determinism / §4.7 cache key).
func (r *PgPlanRepository) SavePlan(ctx context.Context, key string, plan *domain.Plan) (err error) {
	defer obs.Time(ctx, "planrepository.SavePlan")(&err)

	if r.Pool == nil {
		return errors.New("plan repository: pool is nil")
	}
	if plan == nil {
		return errors.New("plan repository: plan is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save plan: encode %q: %w", key, err)
	}

	_, err = r.Pool.Exec(ctx, `
	INSERT INTO solved_plans (key, route_count, total_nm, plan_json)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (key) DO UPDATE
	SET solved_at = now(),
		route_count = EXCLUDED.route_count,
		total_nm = EXCLUDED.total_nm,
		plan_json = EXCLUDED.plan_json;
	`, key, len(plan.Routes), plan.TotalNM, raw)
	if err != nil {
		return fmt.Errorf("save plan %q: %w", key, err)
	}
	return nil
}

// GetPlan fetches one solved plan by key.
func (r *PgPlanRepository) GetPlan(ctx context.Context, key string) (_ *domain.Plan, ok bool, err error) {
	defer obs.Time(ctx, "planrepository.GetPlan")(&err)

	if r.Pool == nil {
		return nil, false, errors.New("plan repository: pool is nil")
	}

	var raw []byte
	err = r.Pool.QueryRow(ctx, `SELECT plan_json FROM solved_plans WHERE key = $1;`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan %q: %w", key, err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, false, fmt.Errorf("get plan %q: decode: %w", key, err)
	}
	return &plan, true, nil
}

// ListPlans returns the most recently solved plans, newest first.
func (r *PgPlanRepository) ListPlans(ctx context.Context, limit int) (_ []ports.PlanRecord, err error) {
	defer obs.Time(ctx, "planrepository.ListPlans")(&err)

	if r.Pool == nil {
		return nil, errors.New("plan repository: pool is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.Pool.Query(ctx, `
	SELECT key, solved_at, route_count, total_nm
	FROM solved_plans
	ORDER BY solved_at DESC
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query: %w", err)
	}
	defer rows.Close()

	out := make([]ports.PlanRecord, 0, limit)
	for rows.Next() {
		var rec ports.PlanRecord
		var solvedAt time.Time
		if err := rows.Scan(&rec.Key, &solvedAt, &rec.RouteCount, &rec.TotalNM); err != nil {
			return nil, fmt.Errorf("list plans: scan: %w", err)
		}
		rec.SolvedAt = solvedAt
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}
	return out, nil
}
