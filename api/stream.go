package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/warp/pay-per-second/host"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// =============================================================================
// HUB - Fans readings out to WebSocket clients
// =============================================================================

const (
	subscriberBuffer = 4
	writeTimeout     = 5 * time.Second
)

// Hub is a host.Sink that forwards each reading to every subscriber.
// Slow subscribers miss readings rather than stall the ticker.
type Hub struct {
	mu   sync.Mutex
	subs map[chan host.Reading]struct{}
	log  zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[chan host.Reading]struct{}),
		log:  log.With().Str("component", "hub").Logger(),
	}
}

// Publish implements host.Sink.
func (h *Hub) Publish(r host.Reading) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		select {
		case ch <- r:
		default:
			h.log.Debug().Msg("Subscriber lagging, reading dropped")
		}
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) subscribe() chan host.Reading {
	ch := make(chan host.Reading, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan host.Reading) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// =============================================================================
// STREAM HANDLER
// =============================================================================

// Stream handles GET /api/stream. The current reading is sent on connect,
// then one message per tick until the client goes away.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: allowedOrigins,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	ch := h.Hub.subscribe()
	defer h.Hub.unsubscribe(ch)

	// clients only listen; CloseRead cancels ctx once they disconnect
	ctx := conn.CloseRead(r.Context())

	if err := writeReading(ctx, conn, h.Monitor.Current()); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case reading := <-ch:
			if err := writeReading(ctx, conn, reading); err != nil {
				if !errors.Is(err, context.Canceled) {
					h.log.Debug().Err(err).Msg("WebSocket write failed")
				}
				return
			}
		}
	}
}

func writeReading(ctx context.Context, conn *websocket.Conn, r host.Reading) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, toReadingDTO(r))
}
