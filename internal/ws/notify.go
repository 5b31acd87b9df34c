package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// IngestEvent is broadcast while an ingestion run progresses so
// dashboards can refresh without polling.
type IngestEvent struct {
	Type      string `json:"type"`
	RunID     string `json:"run_id"`
	Source    string `json:"source"`
	Role      string `json:"role_category"`
	Industry  string `json:"industry_category"`
	Region    string `json:"region_category"`
	Period    int    `json:"period"`
	Matched   int    `json:"matched"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyIngest is a no-op when no hub is installed (one-shot CLI runs).
func NotifyIngest(evt IngestEvent) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt.Timestamp = time.Now().UTC().Format(time.RFC3339)
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
