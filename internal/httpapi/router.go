package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Runs
	rh := RunsHandler{DB: d.DB, RunStatus: d.RunStatus, Hub: d.Hub, RunLeadGen: d.RunLeadGen}
	mux.HandleFunc("/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  rh.List,
		http.MethodPost: rh.Start,
	}))
	mux.HandleFunc("/runs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    rh.GetByPath,    // expects /runs/{id}
		http.MethodDelete: rh.DeleteByPath, // expects /runs/{id}
	}))
	mux.HandleFunc("/runs/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Status,
	}))

	// Leads
	lh := LeadsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/leads", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.List,
	}))
	mux.HandleFunc("/leads/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: lh.DeleteByPath, // expects /leads/{id}
	}))

	// Dork preview
	dh := DorksHandler{Preview: d.Preview}
	mux.HandleFunc("/dorks/preview", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.PreviewQueries,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))
	mux.HandleFunc("/api/secrets/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSearchKey,
	}))
	mux.HandleFunc("/api/secrets/completion", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetCompletionKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", dbh.Checkpoint)

	return mux
}
