package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shahar-caura/evadvisor/internal/scenario"
)

// SSEHub fans out scenario library changes to connected SSE clients, so a
// chat front-end can refresh the snapshot it sends with each question.
type SSEHub struct {
	logger    *slog.Logger
	keepalive time.Duration

	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewSSEHub creates an SSEHub with a 20s keepalive.
func NewSSEHub(logger *slog.Logger) *SSEHub {
	return &SSEHub{
		logger:    logger,
		keepalive: 20 * time.Second,
		clients:   make(map[chan []byte]struct{}),
	}
}

// Start watches the scenario library and broadcasts every change. Blocks until ctx is cancelled.
func (h *SSEHub) Start(ctx context.Context) {
	err := scenario.Watch(ctx, h.logger, func(s *scenario.Scenario) {
		data, err := json.Marshal(s)
		if err != nil {
			return
		}
		h.Broadcast(data)
	})
	if err != nil {
		h.logger.Error("sse: scenario watcher stopped", "err", err)
	}
}

// Broadcast sends data to every connected client. Slow clients miss the event.
func (h *SSEHub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
		}
	}
}

// Clients returns the number of connected clients.
func (h *SSEHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *SSEHub) addClient(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[ch] = struct{}{}
}

func (h *SSEHub) removeClient(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ch)
	close(ch)
}

// ServeHTTP implements http.Handler for SSE connections.
func (h *SSEHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	ch := make(chan []byte, 32)
	h.addClient(ch)
	defer h.removeClient(ch)

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-keepalive.C:
			_, _ = fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case data := <-ch:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
