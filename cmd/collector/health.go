package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rickgao/grandexchange-data/internal/poller"
	"github.com/rickgao/grandexchange-data/internal/version"
)

// resultSource is the part of the poller the health endpoint reads.
type resultSource interface {
	LastResult() (poller.CycleResult, bool)
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(p resultSource, dbEnabled bool) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := struct {
			Status     string         `json:"status"`
			Version    string         `json:"version"`
			Time       time.Time      `json:"time"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Version:    version.String(),
			Time:       time.Now().UTC(),
			Components: make(map[string]any),
		}

		if dbEnabled {
			health.Components["database"] = "enabled"
		} else {
			health.Components["database"] = "disabled"
		}

		last, ok := p.LastResult()
		switch {
		case !ok:
			health.Status = "starting"
		case last.Fetched == 0 && last.Sources > 0:
			health.Status = "unhealthy"
		case !last.OK():
			health.Status = "degraded"
		}
		if ok {
			health.Components["last_cycle"] = last
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
