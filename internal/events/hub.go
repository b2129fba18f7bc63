package events

import "sync"

// Hub fans events out to SSE subscribers. Slow clients are dropped-from,
// never blocked-on.
type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *Hub) Publish(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
			// drop if slow
		}
	}
}

// PublishTyped builds the wire envelope and publishes it.
func (h *Hub) PublishTyped(reqID, runID, typ string, data any) {
	if h == nil {
		return
	}
	h.Publish(Make(reqID, runID, typ, data))
}
