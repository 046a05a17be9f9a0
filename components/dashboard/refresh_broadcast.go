package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const subscriberBuffer = 8

type subscriber struct {
	sessionID string
	ch        chan StateEvent
}

// BroadcastHook fans out state events to in-process subscribers.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

var _ StateHook = (*BroadcastHook)(nil)

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]subscriber),
	}
}

// StateChanged satisfies StateHook. Slow subscribers drop events rather than
// block the setter.
func (h *BroadcastHook) StateChanged(_ context.Context, event StateEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.sessionID != "" && sub.sessionID != event.SessionID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel of state events for sessionID (all sessions
// when empty) and a cancel func that closes it.
func (h *BroadcastHook) Subscribe(sessionID string) (<-chan StateEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan StateEvent, subscriberBuffer)
	h.subs[id] = subscriber{sessionID: sessionID, ch: ch}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub.ch)
			}
		})
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams state events as JSON.
func (h *BroadcastHook) ServeWebSocket(sessionID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID == "" {
			http.Error(w, ErrSessionRequired.Error(), http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		events, cancel := h.Subscribe(sessionID)
		defer cancel()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}
	}
}

// ServeSSE streams state events for sessionID as Server-Sent Events.
func (h *BroadcastHook) ServeSSE(sessionID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID == "" {
			http.Error(w, ErrSessionRequired.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		events, cancel := h.Subscribe(sessionID)
		defer cancel()

		encoder := json.NewEncoder(w)
		flusher, _ := w.(http.Flusher)
		if flusher != nil {
			flusher.Flush()
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				_, _ = w.Write([]byte("data: "))
				if err := encoder.Encode(event); err != nil {
					return
				}
				_, _ = w.Write([]byte("\n"))
				if flusher != nil {
					flusher.Flush()
				}
			}
		}
	}
}
