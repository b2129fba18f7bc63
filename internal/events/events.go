package events

import (
	"encoding/json"
	"time"
)

// Event types emitted over the SSE stream.
const (
	TypeRunStarted    = "run_started"
	TypeRunProgress   = "run_progress"
	TypeLeadFound     = "lead_found"
	TypeRunFinished   = "run_finished"
	TypeRunFailed     = "run_failed"
	TypeConfigUpdated = "config_updated"
	TypeWatchFired    = "watch_fired"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	RunID     string          `json:"run_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func Make(reqID, runID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		RunID:     runID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
