package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/store"
)

type RunsHandler struct {
	DB         *sql.DB
	RunStatus  *atomic.Value // httpapi.RunStatus
	Hub        *events.Hub
	RunLeadGen func(ctx context.Context, criteria domain.SearchCriteria, onLead func(domain.CandidateLead)) (domain.LeadGenerationResult, error)
}

// Start kicks off a generation run in the background and returns its id.
func (h RunsHandler) Start(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	var criteria domain.SearchCriteria
	if err := dec.Decode(&criteria); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	st := h.RunStatus.Load().(RunStatus)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "run_in_progress", "a run is already in progress")
		return
	}

	runID := store.NewRunID()
	if err := store.InsertRun(r.Context(), h.DB, runID, criteria); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	h.RunStatus.Store(RunStatus{
		LastRunID: runID,
		LastRunAt: time.Now().Format(time.RFC3339),
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	reqID := RequestIDFrom(r.Context())
	h.Hub.PublishTyped(reqID, runID, events.TypeRunStarted, criteria)

	go h.execute(runID, reqID, criteria)

	WriteJSON(w, http.StatusAccepted, map[string]any{"run_id": runID, "status": store.RunStatusRunning})
}

func (h RunsHandler) execute(runID, reqID string, criteria domain.SearchCriteria) {
	ctx := context.Background()

	onLead := func(l domain.CandidateLead) {
		h.Hub.PublishTyped(reqID, runID, events.TypeLeadFound, l)
	}

	result, err := h.RunLeadGen(ctx, criteria, onLead)

	now := time.Now().Format(time.RFC3339)
	next := h.RunStatus.Load().(RunStatus)
	next.Running = false
	next.LastRunAt = now

	if err != nil {
		next.LastError = err.Error()
		h.RunStatus.Store(next)
		_ = store.FinishRun(ctx, h.DB, runID, nil, 0, err.Error())
		h.Hub.PublishTyped(reqID, runID, events.TypeRunFailed, map[string]any{"error": err.Error()})
		return
	}

	if err := store.InsertLeads(ctx, h.DB, runID, result.Leads); err != nil {
		next.LastError = err.Error()
		h.RunStatus.Store(next)
		_ = store.FinishRun(ctx, h.DB, runID, result.QueriesUsed, 0, err.Error())
		h.Hub.PublishTyped(reqID, runID, events.TypeRunFailed, map[string]any{"error": err.Error()})
		return
	}

	next.LastError = ""
	next.LastOkAt = now
	next.LastLeads = result.TotalCount
	h.RunStatus.Store(next)

	_ = store.FinishRun(ctx, h.DB, runID, result.QueriesUsed, result.TotalCount, "")
	h.Hub.PublishTyped(reqID, runID, events.TypeRunFinished, map[string]any{
		"lead_count":          result.TotalCount,
		"queries_used":        len(result.QueriesUsed),
		"per_platform_counts": result.PerPlatformCounts,
	})
}

func (h RunsHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.RunStatus.Load().(RunStatus)
	writeJSON(w, st)
}

func (h RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns(r.Context(), h.DB, 0)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, runs)
}

// GetByPath serves /runs/{id}; ?leads=1 includes the run's leads.
func (h RunsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing run id")
		return
	}

	run, err := store.GetRun(r.Context(), h.DB, id)
	if err == sql.ErrNoRows {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such run")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	if r.URL.Query().Get("leads") == "" {
		writeJSON(w, run)
		return
	}

	leads, err := store.ListLeads(r.Context(), h.DB, store.ListLeadsOpts{RunID: id})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if leads == nil {
		leads = []domain.CandidateLead{}
	}
	writeJSON(w, map[string]any{"run": run, "leads": leads})
}

func (h RunsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/runs/")
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "missing run id")
		return
	}

	if err := store.DeleteRun(r.Context(), h.DB, id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
