package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/store"
)

type LeadsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minScore, _ := strconv.Atoi(q.Get("min_score"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	leads, err := store.ListLeads(r.Context(), h.DB, store.ListLeadsOpts{
		RunID:    q.Get("run_id"),
		Platform: q.Get("platform"),
		MinScore: minScore,
		Sort:     q.Get("sort"),
		Window:   q.Get("window"),
		Limit:    limit,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if leads == nil {
		leads = []domain.CandidateLead{}
	}
	writeJSON(w, leads)
}

// DeleteByPath expects /leads/{id}.
func (h LeadsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/leads/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing lead id")
		return
	}

	ok, err := store.DeleteLead(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such lead")
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.PublishTyped(reqID, "", "lead_deleted", map[string]any{"id": id})
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
