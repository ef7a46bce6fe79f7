package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"orbit-and-ore/server/internal/world"
	"orbit-and-ore/server/logging"
	"orbit-and-ore/server/logging/simulation"
	"orbit-and-ore/server/protocol"
)

const (
	tickRate        = 10 // simulation ticks per second
	writeWait       = 10 * time.Second
	disconnectAfter = 30 * time.Second

	// A tick loop that falls badly behind clamps its catch-up instead of
	// freezing the process in a simulation marathon.
	maxCatchUpSeconds = float64(maxCatchUpTicks) / tickRate
	maxCatchUpTicks   = 10

	// Snapshots beyond this size are worth compressing for subscribers that
	// asked for it.
	compressThreshold = 8 << 10

	commandsPerSecond = 20
	commandBurst      = 40
)

type subscriber struct {
	id       string
	conn     *websocket.Conn
	mu       sync.Mutex // guards conn writes
	limiter  *rate.Limiter
	compress bool
	lastSeen time.Time
	dropped  uint64
}

func (s *subscriber) send(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// Hub owns the world and the subscriber registry. All world access funnels
// through the hub mutex, which is what makes the single-goroutine contract of
// world.World hold in practice.
type Hub struct {
	mu          sync.Mutex
	world       *world.World
	publisher   logging.Publisher
	subscribers map[string]*subscriber
	nextClient  uint64
	tick        uint64
}

func newHub(w *world.World, publisher logging.Publisher) *Hub {
	if publisher == nil {
		publisher = logging.NopPublisher{}
	}
	return &Hub{
		world:       w,
		publisher:   publisher,
		subscribers: make(map[string]*subscriber),
	}
}

// Join allocates a client id and returns the full state a fresh client needs.
func (h *Hub) Join() protocol.JoinResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextClient++
	return protocol.JoinResponse{
		Ver:      protocol.Version,
		ID:       fmt.Sprintf("client-%d", h.nextClient),
		Config:   h.world.Config(),
		Snapshot: h.world.Snapshot(),
	}
}

// Subscribe registers a websocket for broadcasts. An existing connection
// under the same id is replaced and closed.
func (h *Hub) Subscribe(clientID string, conn *websocket.Conn, compress bool) *subscriber {
	sub := &subscriber{
		id:       clientID,
		conn:     conn,
		limiter:  rate.NewLimiter(rate.Limit(commandsPerSecond), commandBurst),
		compress: compress,
		lastSeen: time.Now(),
	}
	h.mu.Lock()
	previous := h.subscribers[clientID]
	h.subscribers[clientID] = sub
	h.mu.Unlock()
	if previous != nil {
		previous.conn.Close()
	}
	return sub
}

// Disconnect drops a subscriber. The caller closes the connection.
func (h *Hub) Disconnect(clientID string) {
	h.mu.Lock()
	delete(h.subscribers, clientID)
	h.mu.Unlock()
}

// EnqueueCommand pushes a client command into the world queue, subject to the
// per-subscriber rate limit. Returns false when throttled.
func (h *Hub) EnqueueCommand(sub *subscriber, cmd world.Command) bool {
	if sub != nil && !sub.limiter.Allow() {
		sub.dropped++
		simulation.CommandDropped(context.Background(), h.publisher, h.Tick(),
			logging.EntityRef{ID: sub.id, Kind: logging.EntityKindClient},
			simulation.CommandDroppedPayload{Command: string(cmd.Type), Reason: "rate limited"}, nil)
		return false
	}
	h.mu.Lock()
	h.world.AddCommand(cmd)
	h.mu.Unlock()
	return true
}

// Tick reports the current tick counter.
func (h *Hub) Tick() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tick
}

// advance steps the world once and returns the broadcast snapshot plus any
// subscribers that went silent past the disconnect deadline.
func (h *Hub) advance(now time.Time, dt float64) (world.Snapshot, []*subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if dt > maxCatchUpSeconds {
		simulation.TickLagged(context.Background(), h.publisher, h.tick, simulation.TickLaggedPayload{
			Steps:   maxCatchUpTicks,
			Backlog: dt - maxCatchUpSeconds,
		}, nil)
		dt = maxCatchUpSeconds
	}

	h.tick++
	h.world.Update(dt, h.tick)

	var stale []*subscriber
	for id, sub := range h.subscribers {
		if now.Sub(sub.lastSeen) > disconnectAfter {
			stale = append(stale, sub)
			delete(h.subscribers, id)
		}
	}
	return h.world.Snapshot(), stale
}

// RunSimulation drives the fixed-rate tick loop until the stop channel
// closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now

			snapshot, stale := h.advance(now, dt)
			for _, sub := range stale {
				sub.conn.Close()
			}
			h.broadcastState(snapshot)
		}
	}
}

// broadcastState fans the snapshot out to every subscriber. Large payloads go
// gzip-compressed as binary frames to subscribers that negotiated it.
func (h *Hub) broadcastState(snapshot world.Snapshot) {
	msg := protocol.StateMessage{
		Ver:        protocol.Version,
		Type:       "state",
		ServerTime: time.Now().UnixMilli(),
		Snapshot:   snapshot,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal state message: %v", err)
		return
	}

	var compressed []byte
	if len(data) > compressThreshold {
		compressed = gzipPayload(data)
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		payload, messageType := data, websocket.TextMessage
		if sub.compress && compressed != nil {
			payload, messageType = compressed, websocket.BinaryMessage
		}
		if err := sub.send(messageType, payload); err != nil {
			log.Printf("broadcast to %s failed: %v", sub.id, err)
			sub.conn.Close()
			h.Disconnect(sub.id)
		}
	}
}

func gzipPayload(data []byte) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return nil
	}
	if err := gz.Close(); err != nil {
		return nil
	}
	return buf.Bytes()
}

// DiagnosticsSnapshot exposes subscriber liveness for the diagnostics
// endpoint.
func (h *Hub) DiagnosticsSnapshot() []protocol.DiagnosticsClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]protocol.DiagnosticsClient, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		clients = append(clients, protocol.DiagnosticsClient{
			Ver:      protocol.Version,
			ID:       sub.id,
			LastSeen: sub.lastSeen.UnixMilli(),
			Dropped:  sub.dropped,
		})
	}
	return clients
}

// MarkSeen refreshes a subscriber's liveness deadline.
func (h *Hub) MarkSeen(sub *subscriber) {
	h.mu.Lock()
	sub.lastSeen = time.Now()
	h.mu.Unlock()
}
