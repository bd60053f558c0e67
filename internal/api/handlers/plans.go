package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pax-route-planner/internal/api/dto"
	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/platform/obs"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/solve"
)

// ScenarioSink is the subset of api.ScenarioStore a handler needs: recording
// the last decoded scenario for GET /demands to reflect.
type ScenarioSink interface {
	Set(*domain.Scenario)
}

// PlanHandler runs the Solver Pipeline against a posted scenario, cached by
// a deterministic key (spec §4.7). On a cache miss the freshly solved plan
// is written to the cache and recorded to the durable repository; on a hit
// the cached plan is returned and neither store is written.
type PlanHandler struct {
	Provider ports.DistanceMatrixProvider
	Cfg      domain.Config
	Cache    ports.PlanCache
	Repo     ports.PlanRepository
	Store    ScenarioSink
	CacheTTL time.Duration
}

func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScenarioRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	scenario, err := toDomainScenario(req, h.Cfg)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if h.Store != nil {
		h.Store.Set(scenario)
	}

	ctx := r.Context()
	key := scenarioCacheKey(scenario)

	if h.Cache != nil {
		if plan, ok, err := h.Cache.Get(ctx, key); err != nil {
			log.Printf("plan cache get failed: %v", err)
		} else if ok {
			writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
			return
		}
	}

	done := obs.Time(ctx, "api.Plan")
	plan := solve.Solve(h.Provider, h.Cfg, *scenario)
	done(nil)

	if h.Cache != nil {
		if err := h.Cache.Put(ctx, key, &plan, h.CacheTTL); err != nil {
			log.Printf("plan cache put failed: %v", err)
		}
	}
	if h.Repo != nil {
		if err := h.Repo.SavePlan(ctx, key, &plan); err != nil {
			log.Printf("plan repository save failed: %v", err)
		}
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(&plan))
}

func toDomainScenario(req dto.ScenarioRequest, cfg domain.Config) (*domain.Scenario, error) {
	sc := &domain.Scenario{
		CrewChange:        req.CrewChange,
		CrewChangeM9Count: req.CrewChangeM9Count,
	}

	speeds := domain.SpeedTable{}
	for i, b := range req.Boats {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return nil, fmt.Errorf("boat at index %d: name is required", i)
		}
		departAt, err := parseHHMM(b.DepartAt)
		if err != nil {
			return nil, fmt.Errorf("boat %q: depart_at: %w", name, err)
		}
		boat := domain.NewBoat(name, b.Available, departAt, speeds, cfg)
		boat.FixedRoute = strings.TrimSpace(b.FixedRoute)
		sc.Boats = append(sc.Boats, boat)
	}

	for i, d := range req.Demands {
		platform := strings.TrimSpace(d.Platform)
		if platform == "" {
			return nil, fmt.Errorf("demand at index %d: platform is required", i)
		}
		sc.Demands = append(sc.Demands, domain.Demand{
			Platform: platform,
			M9:       d.M9,
			TMIB:     d.TMIB,
			Priority: d.Priority,
		})
	}

	return sc, nil
}

func parseHHMM(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	return h*60 + m, nil
}

func toPlanResponse(plan *domain.Plan) dto.PlanResponse {
	res := dto.PlanResponse{
		Routes:   make([]string, 0, len(plan.Routes)),
		Warnings: make([]dto.WarningResponse, 0, len(plan.Warnings)),
		TotalNM:  plan.TotalNM,
	}
	for _, route := range plan.Routes {
		res.Routes = append(res.Routes, solve.RouteString(route))
	}
	for _, w := range plan.Warnings {
		res.Warnings = append(res.Warnings, dto.WarningResponse{Platform: w.Platform, Message: w.Message})
	}
	return res
}

// scenarioCacheKey computes a deterministic key from the scenario's
// crew-change fields, boats and demand matrix, hashed in input order
// without sorting: the same rows in a different order give a different key.
func scenarioCacheKey(sc *domain.Scenario) string {
	var b strings.Builder
	fmt.Fprintf(&b, "cc=%v:%d|", sc.CrewChange, sc.CrewChangeM9Count)
	for _, boat := range sc.Boats {
		fmt.Fprintf(&b, "boat:%s:%v:%d:%d:%s|", boat.Name, boat.Available, boat.DepartAt, boat.Capacity, boat.FixedRoute)
	}
	for _, d := range sc.Demands {
		fmt.Fprintf(&b, "d:%s:%d:%d:%d|", d.Platform, d.M9, d.TMIB, d.Priority)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
