// Package hub owns a running world session: it serializes every
// world-mutating command through the simulation tick, and broadcasts window
// snapshots to subscribed observers.
package hub

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"stack-and-slash/server/internal/grid"
	"stack-and-slash/server/internal/storage"
	"stack-and-slash/server/internal/worlddata"
)

// CommandKind names an operation an observer may request.
type CommandKind string

const (
	CommandMove          CommandKind = "move"
	CommandTeleport      CommandKind = "teleport"
	CommandRemoveFeature CommandKind = "remove_feature"
	CommandSave          CommandKind = "save"
)

// Command is a queued world operation. Commands are applied on the tick
// goroutine only; readers never touch the world directly.
type Command struct {
	Kind CommandKind `json:"type"`
	X    int         `json:"x"`
	Y    int         `json:"y"`
}

// maxQueuedCommands bounds the command queue so a misbehaving client cannot
// grow it without limit between ticks.
const maxQueuedCommands = 256

// Config captures the hub's runtime settings.
type Config struct {
	// TickRate is the simulation frequency in ticks per second.
	TickRate int
	// Logger receives lifecycle and correctness output.
	Logger *log.Logger
	// Store, when set, records the finished session.
	Store *storage.Store
}

// Hub drives the tick loop for one world and fans state out to subscribers.
type Hub struct {
	mu          sync.Mutex
	world       *worlddata.WorldData
	cfg         Config
	commands    []Command
	subscribers map[*Subscription]struct{}
	done        chan struct{}

	tick            uint64
	featuresRemoved int
	startedAt       time.Time
}

// New constructs a hub around an already generated world.
func New(world *worlddata.WorldData, cfg Config) *Hub {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 20
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Hub{
		world:       world,
		cfg:         cfg,
		subscribers: make(map[*Subscription]struct{}),
		done:        make(chan struct{}),
		startedAt:   time.Now(),
	}
}

// Enqueue stages a command for the next tick. Commands beyond the queue bound
// are dropped with a warning rather than growing memory.
func (h *Hub) Enqueue(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.commands) >= maxQueuedCommands {
		h.cfg.Logger.Warnf("hub: command queue full, dropping %s", cmd.Kind)
		return
	}
	h.commands = append(h.commands, cmd)
}

// Run drives the fixed-rate tick loop until the stop channel closes, then
// records the session if a store is configured and closes Done.
func (h *Hub) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			h.recordSession()
			close(h.done)
			return
		case <-ticker.C:
			h.step()
		}
	}
}

// Done is closed once Run has stopped and the session record, if any, has
// been written. Callers that own the session store must wait on it before
// closing the store.
func (h *Hub) Done() <-chan struct{} { return h.done }

// step applies the queued commands and broadcasts the window when it changed.
func (h *Hub) step() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tick++
	commands := h.commands
	h.commands = nil

	changed := false
	for _, cmd := range commands {
		if h.applyLocked(cmd) {
			changed = true
		}
	}
	if changed {
		h.broadcastLocked(h.snapshotLocked())
	}
}

func (h *Hub) applyLocked(cmd Command) bool {
	switch cmd.Kind {
	case CommandMove:
		return h.world.UpdatePlayerLocation(cmd.X, cmd.Y)
	case CommandTeleport:
		h.world.TeleportPlayer(cmd.X, cmd.Y)
		return true
	case CommandRemoveFeature:
		pos := grid.Point{X: cmd.X, Y: cmd.Y}
		if h.world.FeatureAt(pos) == nil {
			return false
		}
		h.world.RemoveFeature(pos)
		h.featuresRemoved++
		return true
	case CommandSave:
		if err := h.world.SaveData(); err != nil {
			// The in-memory world is unaffected by a failed save; report and
			// keep playing.
			h.cfg.Logger.Errorf("hub: save failed: %v", err)
		} else {
			h.cfg.Logger.Infof("hub: saved world %d", h.world.Seed())
		}
		return false
	default:
		h.cfg.Logger.Warnf("hub: unknown command %q", cmd.Kind)
		return false
	}
}

// Subscribe registers an observer and returns its subscription together with
// the current window snapshot.
func (h *Hub) Subscribe() (*Subscription, []byte) {
	sub := &Subscription{ch: make(chan []byte, 16)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
	return sub, h.snapshotLocked()
}

// Unsubscribe removes an observer and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(sub)
}

func (h *Hub) dropLocked(sub *Subscription) {
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.ch)
}

func (h *Hub) broadcastLocked(data []byte) {
	for sub := range h.subscribers {
		select {
		case sub.ch <- data:
		default:
			// A subscriber that cannot keep up is dropped rather than allowed
			// to stall the tick loop.
			h.cfg.Logger.Warnf("hub: dropping slow subscriber")
			h.dropLocked(sub)
		}
	}
}

func (h *Hub) recordSession() {
	if h.cfg.Store == nil {
		return
	}
	h.mu.Lock()
	session := storage.Session{
		Seed:            h.world.Seed(),
		Ticks:           h.tick,
		FeaturesRemoved: h.featuresRemoved,
		DurationSeconds: int(time.Since(h.startedAt).Seconds()),
	}
	h.mu.Unlock()

	if err := h.cfg.Store.SaveSession(session); err != nil {
		h.cfg.Logger.Errorf("hub: record session: %v", err)
	}
}

// Subscription is one observer's feed of state snapshots.
type Subscription struct {
	ch chan []byte
}

// C returns the snapshot channel. It is closed when the subscription ends.
func (s *Subscription) C() <-chan []byte { return s.ch }

func (h *Hub) snapshotLocked() []byte {
	msg := StateMessage{
		Type: "state",
		Tick: h.tick,
		Seed: h.world.Seed(),
	}
	player := h.world.PlayerLocation()
	msg.Player = PlayerPayload{X: player.X, Y: player.Y}

	for pos, feature := range h.world.Surroundings() {
		msg.Features = append(msg.Features, FeaturePayload{
			X:    pos.X,
			Y:    pos.Y,
			Kind: string(feature.Kind()),
		})
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.cfg.Logger.Errorf("hub: marshal state: %v", err)
		return nil
	}
	return data
}
