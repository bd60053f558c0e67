package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
)

// SqlitePlanRepository is a database/sql + modernc.org/sqlite backed
// implementation of ports.PlanRepository, for local/offline runs that have
// no Postgres available. Adapted from the teacher's
// SqlitePackageRepository: same DB-is-nil guard and row-scan shape, solved
// plans in place of packages.
type SqlitePlanRepository struct{ DB *sql.DB }

func NewSqlitePlanRepository(db *sql.DB) *SqlitePlanRepository {
	return &SqlitePlanRepository{DB: db}
}

// SavePlan records one solved plan, keyed by its deterministic scenario hash.
func (s *SqlitePlanRepository) SavePlan(ctx context.Context, key string, plan *domain.Plan) error {
	if s.DB == nil {
		return errors.New("sqlite plan repository: DB is nil")
	}
	if plan == nil {
		return errors.New("save plan: plan is nil")
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("save plan: encode %q: %w", key, err)
	}

	query := `
	INSERT OR REPLACE INTO solved_plans (key, solved_at, route_count, total_nm, plan_json)
	VALUES (?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, key, time.Now().UTC(), len(plan.Routes), plan.TotalNM, raw); err != nil {
		return fmt.Errorf("save plan %q: %w", key, err)
	}
	return nil
}

// GetPlan fetches one solved plan by key.
func (s *SqlitePlanRepository) GetPlan(ctx context.Context, key string) (*domain.Plan, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("sqlite plan repository: DB is nil")
	}

	query := `SELECT plan_json FROM solved_plans WHERE key = ?;`
	var raw []byte
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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
func (s *SqlitePlanRepository) ListPlans(ctx context.Context, limit int) ([]ports.PlanRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite plan repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT key, solved_at, route_count, total_nm
	FROM solved_plans
	ORDER BY solved_at DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list plans: query solved_plans table: %w", err)
	}
	defer rows.Close()

	out := make([]ports.PlanRecord, 0, limit)
	for rows.Next() {
		var rec ports.PlanRecord
		var solvedAt time.Time
		if err := rows.Scan(&rec.Key, &solvedAt, &rec.RouteCount, &rec.TotalNM); err != nil {
			return nil, fmt.Errorf("list plans: scan row: %w", err)
		}
		rec.SolvedAt = solvedAt
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans: row iteration: %w", err)
	}
	return out, nil
}
