package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pax-route-planner/internal/api/dto"
	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/geo"
)

// fakeProvider returns a fixed distance for every pair, enough to let the
// solver run end to end without a real geography table.
type fakeProvider struct{ nm float64 }

func (p fakeProvider) Distance(a, b string) (float64, bool) {
	if a == b {
		return 0, true
	}
	return p.nm, true
}

type fakeStore struct {
	set *domain.Scenario
}

func (f *fakeStore) Set(sc *domain.Scenario) { f.set = sc }

type fakeCache struct {
	getCalls int
	putCalls int
	hit      *domain.Plan
}

func (c *fakeCache) Get(ctx context.Context, key string) (*domain.Plan, bool, error) {
	c.getCalls++
	if c.hit != nil {
		return c.hit, true, nil
	}
	return nil, false, nil
}

func (c *fakeCache) Put(ctx context.Context, key string, plan *domain.Plan, ttl time.Duration) error {
	c.putCalls++
	return nil
}

type fakeRepo struct{ saveCalls int }

func (r *fakeRepo) SavePlan(ctx context.Context, key string, plan *domain.Plan) error {
	r.saveCalls++
	return nil
}

func (r *fakeRepo) ListPlans(ctx context.Context, limit int) ([]ports.PlanRecord, error) {
	return nil, nil
}

func (r *fakeRepo) GetPlan(ctx context.Context, key string) (*domain.Plan, bool, error) {
	return nil, false, nil
}

func newTestScenarioBody() dto.ScenarioRequest {
	return dto.ScenarioRequest{
		Boats: []dto.BoatRequest{
			{Name: "SURFER-1", Available: true, DepartAt: "08:00"},
		},
		Demands: []dto.DemandRequest{
			{Platform: "PCM-01", M9: 2, TMIB: 3, Priority: 0},
		},
	}
}

func TestPlanHandlerHappyPath(t *testing.T) {
	store := &fakeStore{}
	cache := &fakeCache{}
	repo := &fakeRepo{}

	h := &PlanHandler{
		Provider: fakeProvider{nm: 5},
		Cfg:      geo.DefaultConfig(),
		Cache:    cache,
		Repo:     repo,
		Store:    store,
		CacheTTL: time.Minute,
	}

	body, err := json.Marshal(newTestScenarioBody())
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Routes) != 1 {
		t.Fatalf("routes = %d, want 1: %+v", len(res.Routes), res)
	}

	if store.set == nil {
		t.Fatal("expected the posted scenario to be recorded in the store")
	}
	if cache.putCalls != 1 {
		t.Fatalf("cache Put calls = %d, want 1", cache.putCalls)
	}
	if repo.saveCalls != 1 {
		t.Fatalf("repo SavePlan calls = %d, want 1", repo.saveCalls)
	}
}

func TestPlanHandlerCacheHitSkipsSolve(t *testing.T) {
	cached := &domain.Plan{TotalNM: 42}
	cache := &fakeCache{hit: cached}
	repo := &fakeRepo{}

	h := &PlanHandler{
		Provider: fakeProvider{nm: 5},
		Cfg:      geo.DefaultConfig(),
		Cache:    cache,
		Repo:     repo,
		Store:    &fakeStore{},
		CacheTTL: time.Minute,
	}

	body, _ := json.Marshal(newTestScenarioBody())
	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalNM != 42 {
		t.Fatalf("TotalNM = %v, want the cached plan's 42", res.TotalNM)
	}
	if repo.saveCalls != 0 {
		t.Fatalf("repo SavePlan calls = %d, want 0 on a cache hit", repo.saveCalls)
	}
}

func TestPlanHandlerRejectsWrongMethod(t *testing.T) {
	h := &PlanHandler{Cfg: geo.DefaultConfig()}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestPlanHandlerRejectsMalformedJSON(t *testing.T) {
	h := &PlanHandler{Cfg: geo.DefaultConfig()}

	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader([]byte(`{"boats": [}`)))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPlanHandlerRejectsTrailingObject(t *testing.T) {
	h := &PlanHandler{Cfg: geo.DefaultConfig()}

	body := []byte(`{"boats": []}{"extra": true}`)
	req := httptest.NewRequest(http.MethodPost, "/plans", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Plan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a body with more than one JSON object", rec.Code)
	}
}

func TestScenarioCacheKeyIsStableAndSensitiveToContent(t *testing.T) {
	a, err := toDomainScenario(newTestScenarioBody(), geo.DefaultConfig())
	if err != nil {
		t.Fatalf("toDomainScenario: %v", err)
	}
	b, err := toDomainScenario(newTestScenarioBody(), geo.DefaultConfig())
	if err != nil {
		t.Fatalf("toDomainScenario: %v", err)
	}

	if scenarioCacheKey(a) != scenarioCacheKey(b) {
		t.Fatal("identical scenarios produced different cache keys")
	}

	req := newTestScenarioBody()
	req.Demands[0].Priority = 3
	c, err := toDomainScenario(req, geo.DefaultConfig())
	if err != nil {
		t.Fatalf("toDomainScenario: %v", err)
	}

	if scenarioCacheKey(a) == scenarioCacheKey(c) {
		t.Fatal("differing scenarios produced the same cache key")
	}
}
