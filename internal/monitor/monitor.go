// Package monitor exposes a read-only live telemetry feed over a
// WebSocket, grounded on Ch00k/kindavm's internal/web.Server: the same
// websocket.Accept + conn.Write(ctx, ...) shape and the same
// http.Server-in-a-goroutine + select-on-ctx.Done Run(ctx) pattern, cut
// down to one broadcast-only endpoint since this feed never reads client
// input.
package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// Event is one telemetry update broadcast to every connected client.
type Event struct {
	Source string    `json:"source"`
	State  string    `json:"state"`
	FPS    float64   `json:"fps"`
	At     time.Time `json:"at"`
}

// Monitor broadcasts Events to any number of WebSocket subscribers.
type Monitor struct {
	addr string

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// New builds a Monitor that will listen on addr once Run is called.
func New(addr string) *Monitor {
	return &Monitor{addr: addr, subs: make(map[chan Event]struct{})}
}

// Publish broadcasts ev to every currently connected subscriber. Slow
// subscribers are dropped rather than allowed to block the publisher.
func (m *Monitor) Publish(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subs {
		select {
		case ch <- ev:
		default:
			delete(m.subs, ch)
			close(ch)
		}
	}
}

func (m *Monitor) subscribe() chan Event {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()
	return ch
}

func (m *Monitor) unsubscribe(ch chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[ch]; ok {
		delete(m.subs, ch)
		close(ch)
	}
}

func (m *Monitor) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	ch := m.subscribe()
	defer m.unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "dropped: slow consumer")
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

// Run serves the telemetry endpoint until ctx is canceled, then shuts the
// server down gracefully.
func (m *Monitor) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/telemetry", m.handleWebSocket)

	srv := &http.Server{
		Addr:        m.addr,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
