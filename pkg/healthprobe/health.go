// Package healthprobe provides liveness and readiness handlers for the
// operational HTTP server.
package healthprobe

import (
	"net/http"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// Probe tracks process liveness and readiness.
type Probe struct {
	startedAt time.Time
	ready     atomic.Bool
}

// New creates a probe that reports not-ready until SetReady(true).
func New() *Probe {
	return &Probe{
		startedAt: time.Now().UTC(),
	}
}

// SetReady marks the application as ready to serve traffic.
func (p *Probe) SetReady(ready bool) {
	p.ready.Store(ready)
}

type probeResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
	Message   string    `json:"message,omitempty"`
}

// Health returns the liveness handler. It answers 200 whenever the process
// is running.
func (p *Probe) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		p.write(w, http.StatusOK, probeResponse{
			Status:    "healthy",
			StartedAt: p.startedAt,
			Uptime:    time.Since(p.startedAt).String(),
		})
	}
}

// Ready returns the readiness handler: 200 once the engine is polling, 503
// while the application is still starting.
func (p *Probe) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !p.ready.Load() {
			p.write(w, http.StatusServiceUnavailable, probeResponse{
				Status:  "not_ready",
				Message: "application is starting",
			})
			return
		}

		p.write(w, http.StatusOK, probeResponse{
			Status:    "ready",
			StartedAt: p.startedAt,
			Uptime:    time.Since(p.startedAt).String(),
		})
	}
}

func (p *Probe) write(w http.ResponseWriter, status int, resp probeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
