package httpapi

import (
	"encoding/json"
	"net/http"

	"leadgen-engine/internal/secrets"
)

type SecretsHandler struct{}

type setKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) setKey(account string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setKeyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := secrets.Set(account, req.Key); err != nil {
			http.Error(w, "failed to store key: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h SecretsHandler) SetSearchKey(w http.ResponseWriter, r *http.Request) {
	h.setKey(secrets.SearchAPIAccount)(w, r)
}

func (h SecretsHandler) SetCompletionKey(w http.ResponseWriter, r *http.Request) {
	h.setKey(secrets.CompletionAPIAccount)(w, r)
}

// Status reports which keys are present without revealing them.
func (h SecretsHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{
		"search_api_key":     secrets.Present(secrets.SearchAPIAccount),
		"completion_api_key": secrets.Present(secrets.CompletionAPIAccount),
	})
}
