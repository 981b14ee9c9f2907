package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker probes one dependency and returns nil when it is usable.
type Checker func(ctx context.Context) error

// Status is the reported health of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the JSON body returned by the health endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of a single dependency probe.
type CheckResult struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// checkTimeout bounds the whole readiness probe.
const checkTimeout = 5 * time.Second

// Handler serves liveness and readiness endpoints over a set of named
// checkers.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewHandler creates a handler with no registered checkers. With none
// registered, readiness always reports up.
func NewHandler() *Handler {
	return &Handler{checkers: make(map[string]Checker)}
}

// Register adds a named dependency checker.
func (h *Handler) Register(name string, checker Checker) {
	h.mu.Lock()
	h.checkers[name] = checker
	h.mu.Unlock()
}

// LivenessHandler reports that the process is running. It never probes
// dependencies.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler probes every registered dependency concurrently and
// reports 200 when all are up, 503 otherwise.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		h.mu.RLock()
		names := make([]string, 0, len(h.checkers))
		probes := make([]Checker, 0, len(h.checkers))
		for name, checker := range h.checkers {
			names = append(names, name)
			probes = append(probes, checker)
		}
		h.mu.RUnlock()

		results := make([]CheckResult, len(probes))
		var wg sync.WaitGroup
		for i, probe := range probes {
			wg.Add(1)
			go func(i int, probe Checker) {
				defer wg.Done()
				if err := probe(ctx); err != nil {
					results[i] = CheckResult{Status: StatusDown, Error: err.Error()}
				} else {
					results[i] = CheckResult{Status: StatusUp}
				}
			}(i, probe)
		}
		wg.Wait()

		overall := StatusUp
		checks := make(map[string]CheckResult, len(results))
		for i, name := range names {
			checks[name] = results[i]
			if results[i].Status == StatusDown {
				overall = StatusDown
			}
		}

		code := http.StatusOK
		if overall == StatusDown {
			code = http.StatusServiceUnavailable
		}
		writeResponse(w, code, Response{
			Status:    overall,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		})
	}
}

func writeResponse(w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
