// Package ports declares the boundary interfaces the core optimizer depends
// on but never implements directly, in the hexagonal style of the teacher
// repository's internal/ports package (DistanceProvider,
// DistanceMatrixProvider, PackageRepository).
package ports

import (
	"context"
	"time"

	"pax-route-planner/internal/domain"
)

// DistanceMatrixProvider is the geography boundary (spec §6.3, §4.1):
// directed lookup with fallback to the reverse direction and finally to a
// sentinel, handled by the implementation or by callers per spec; this
// port simply exposes the raw stored entry if one exists.
type DistanceMatrixProvider interface {
	// Distance returns the stored nautical-mile distance from a to b, and
	// whether an entry exists for that direction.
	Distance(a, b string) (nm float64, ok bool)
}

// ScenarioReader is the spreadsheet-input boundary (spec §6.1). Concrete
// adapters parse whatever storage format backs the scenario (CSV, a live
// spreadsheet engine, ...) into a domain.Scenario.
type ScenarioReader interface {
	ReadScenario(path string) (*domain.Scenario, error)
}

// ReportWriter is the output-file boundary (spec §6.4).
type ReportWriter interface {
	WriteReport(path string, plan *domain.Plan, crewChange bool, crewChangeM9Count int) error
}

// PlanCache is a fast, ephemeral memoizer for solved plans, keyed by a
// deterministic hash of the scenario (spec §5 determinism + §9 config
// note). A miss is not an error; callers fall through to the solver.
type PlanCache interface {
	Get(ctx context.Context, key string) (*domain.Plan, bool, error)
	Put(ctx context.Context, key string, plan *domain.Plan, ttl time.Duration) error
}

// PlanRepository is a durable audit trail of solved plans, independent of
// the ephemeral PlanCache: every plan the solver actually computes is
// recorded here, for historical reporting. A plan served from the cache is
// not solved again and so is not recorded again.
type PlanRepository interface {
	SavePlan(ctx context.Context, key string, plan *domain.Plan) error
	ListPlans(ctx context.Context, limit int) ([]PlanRecord, error)
	GetPlan(ctx context.Context, key string) (*domain.Plan, bool, error)
}

// PlanRecord is the list-view projection of a stored plan.
type PlanRecord struct {
	Key      string
	SolvedAt time.Time
	RouteCount int
	TotalNM  float64
}
