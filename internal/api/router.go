package api

import (
	"net/http"
	"time"

	"pax-route-planner/internal/api/handlers"
	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
)

const defaultCacheTTL = 10 * time.Minute

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters), carried forward unchanged in shape from the teacher.
func NewRouter(provider ports.DistanceMatrixProvider, cfg domain.Config, planCache ports.PlanCache, planRepo ports.PlanRepository) http.Handler {
	mux := http.NewServeMux()

	store := &ScenarioStore{}

	planHandler := &handlers.PlanHandler{
		Provider: provider,
		Cfg:      cfg,
		Cache:    planCache,
		Repo:     planRepo,
		Store:    store,
		CacheTTL: defaultCacheTTL,
	}
	demandHandler := &handlers.DemandHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/demands", demandHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)

	return loggingMiddleware(mux)
}
