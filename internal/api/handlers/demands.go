package handlers

import (
	"net/http"

	"pax-route-planner/internal/api/dto"
	"pax-route-planner/internal/domain"
)

// ScenarioSource is the subset of api.ScenarioStore a handler needs to read
// back the last decoded scenario.
type ScenarioSource interface {
	Last() *domain.Scenario
}

// DemandHandler exposes the demand matrix of the last scenario posted to
// POST /plans, adapted from the teacher's PackageHandler.List.
type DemandHandler struct {
	Store ScenarioSource
}

func (h *DemandHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var sc *domain.Scenario
	if h.Store != nil {
		sc = h.Store.Last()
	}

	res := dto.ListDemandsResponse{Demands: []dto.DemandResponse{}}
	if sc != nil {
		for _, d := range sc.Demands {
			res.Demands = append(res.Demands, dto.DemandResponse{
				Platform: d.Platform,
				M9:       d.M9,
				TMIB:     d.TMIB,
				Priority: d.Priority,
			})
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
