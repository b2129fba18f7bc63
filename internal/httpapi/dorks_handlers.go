package httpapi

import (
	"encoding/json"
	"net/http"

	"leadgen-engine/internal/domain"
)

type DorksHandler struct {
	Preview func(criteria domain.SearchCriteria) []domain.DorkQuery
}

// PreviewQueries returns the dork queries a run with these criteria would
// execute, without touching the network.
func (h DorksHandler) PreviewQueries(w http.ResponseWriter, r *http.Request) {
	var criteria domain.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	queries := h.Preview(criteria)
	if queries == nil {
		queries = []domain.DorkQuery{}
	}
	writeJSON(w, map[string]any{"queries": queries, "count": len(queries)})
}
