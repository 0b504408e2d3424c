package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// warmupHandler simulates an application starting behind a reverse proxy:
// it answers 503 until warmup has passed since the first request, then 200.
type warmupHandler struct {
	warmup time.Duration
	now    func() time.Time

	mu        sync.Mutex
	startedAt time.Time
	ready     bool
}

func newWarmupHandler(warmup time.Duration, now func() time.Time) *warmupHandler {
	return &warmupHandler{warmup: warmup, now: now}
}

func (h *warmupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	now := h.now()
	if h.startedAt.IsZero() {
		h.startedAt = now
	}
	if !h.ready && now.Sub(h.startedAt) >= h.warmup {
		h.ready = true
		slog.Info("status change", "from", "starting", "to", "ok")
	}
	ready := h.ready
	h.mu.Unlock()

	status, code := "starting", http.StatusServiceUnavailable
	if ready {
		status, code = "ok", http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// StartMockApplication serves a warming-up application on addr.
// Call this in a goroutine before waiting on it.
func StartMockApplication(addr string, warmup time.Duration) {
	handler := newWarmupHandler(warmup, time.Now)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)
		handler.ServeHTTP(w, r)
	})

	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
