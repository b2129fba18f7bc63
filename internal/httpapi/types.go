package httpapi

type RunStatus struct {
	LastRunID string `json:"last_run_id"`
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastLeads int    `json:"last_leads"`
	Running   bool   `json:"running"`
}
