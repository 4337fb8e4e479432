package livews

import (
    "context"
    "encoding/base64"
    "encoding/json"
    "log"
    "net/http"
    "sync"
    "time"

    ws "nhooyr.io/websocket"
)

// Event is the wire envelope pushed to attached front ends.
type Event struct {
    Type    string `json:"type"`
    TsMs    int64  `json:"ts_ms"`
    Payload any    `json:"payload,omitempty"`
}

const writeTimeout = 5 * time.Second

// Hub fans session events and synthesized audio out to every attached
// websocket client. Clients are listeners only; inbound frames are ignored.
type Hub struct {
    mu    sync.Mutex
    conns map[*ws.Conn]struct{}
}

func NewHub() *Hub {
    return &Hub{conns: make(map[*ws.Conn]struct{})}
}

// HandleWS upgrades the request and holds the connection open until the
// client goes away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
    c, err := ws.Accept(w, r, nil)
    if err != nil {
        log.Printf("[livews] accept: %v", err)
        return
    }
    h.mu.Lock()
    h.conns[c] = struct{}{}
    n := len(h.conns)
    h.mu.Unlock()
    metricClients.Set(float64(n))
    log.Printf("[livews] client connected, %d attached", n)

    ctx := r.Context()
    for {
        // Drain inbound frames; the hub is push-only.
        if _, _, err := c.Read(ctx); err != nil {
            break
        }
    }
    _ = c.Close(ws.StatusNormalClosure, "done")
    h.remove(c)
}

func (h *Hub) remove(c *ws.Conn) {
    h.mu.Lock()
    delete(h.conns, c)
    n := len(h.conns)
    h.mu.Unlock()
    metricClients.Set(float64(n))
    log.Printf("[livews] client disconnected, %d attached", n)
}

// Notify broadcasts a session event. Implements the orchestrator's event sink.
func (h *Hub) Notify(event string, payload any) {
    h.broadcast(Event{Type: event, TsMs: time.Now().UnixMilli(), Payload: payload})
}

// Play delivers synthesized speech to the attached clients as a base64 audio
// event. Implements the audio pipeline's player.
func (h *Hub) Play(ctx context.Context, audio []byte) error {
    h.broadcast(Event{
        Type:    "audio",
        TsMs:    time.Now().UnixMilli(),
        Payload: map[string]any{"audio": base64.StdEncoding.EncodeToString(audio)},
    })
    return nil
}

func (h *Hub) broadcast(ev Event) {
    b, err := json.Marshal(ev)
    if err != nil {
        log.Printf("[livews] marshal %s: %v", ev.Type, err)
        return
    }
    h.mu.Lock()
    conns := make([]*ws.Conn, 0, len(h.conns))
    for c := range h.conns {
        conns = append(conns, c)
    }
    h.mu.Unlock()

    for _, c := range conns {
        ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
        if err := c.Write(ctx, ws.MessageText, b); err != nil {
            // Read loop notices the dead connection and removes it.
            log.Printf("[livews] write %s: %v", ev.Type, err)
        } else {
            metricEventsSent.WithLabelValues(ev.Type).Inc()
        }
        cancel()
    }
}

// Close disconnects every attached client. Called on shutdown.
func (h *Hub) Close() {
    h.mu.Lock()
    for c := range h.conns {
        _ = c.Close(ws.StatusGoingAway, "shutting down")
    }
    h.conns = make(map[*ws.Conn]struct{})
    h.mu.Unlock()
    metricClients.Set(0)
}
