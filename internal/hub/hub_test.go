package hub

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"stack-and-slash/server/internal/grid"
	"stack-and-slash/server/internal/storage"
	"stack-and-slash/server/internal/worlddata"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	params := worlddata.DefaultParams()
	params.Radius = 12
	params.SaveDir = t.TempDir()
	world := worlddata.New(42, params)
	world.GenerateWorld()
	return New(world, Config{})
}

func decodeState(t *testing.T, data []byte) StateMessage {
	t.Helper()
	var msg StateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return msg
}

func TestSubscribeReceivesSnapshot(t *testing.T) {
	h := newTestHub(t)
	sub, snapshot := h.Subscribe()
	defer h.Unsubscribe(sub)

	msg := decodeState(t, snapshot)
	if msg.Type != "state" || msg.Seed != 42 {
		t.Fatalf("snapshot header: %+v", msg)
	}
	if msg.Player.X != 0 || msg.Player.Y != 0 {
		t.Fatalf("snapshot player: %+v", msg.Player)
	}
	if len(msg.Features) != len(h.world.Surroundings()) {
		t.Fatalf("snapshot features: got %d want %d", len(msg.Features), len(h.world.Surroundings()))
	}
}

func TestMoveCommandBroadcasts(t *testing.T) {
	h := newTestHub(t)
	sub, _ := h.Subscribe()
	defer h.Unsubscribe(sub)

	h.Enqueue(Command{Kind: CommandMove, X: 1, Y: 0})
	h.step()

	msg := decodeState(t, <-sub.C())
	if msg.Player.X != 1 || msg.Player.Y != 0 {
		t.Fatalf("player after move: %+v", msg.Player)
	}
	if msg.Tick != 1 {
		t.Fatalf("tick: got %d want 1", msg.Tick)
	}
}

func TestStationaryMoveDoesNotBroadcast(t *testing.T) {
	h := newTestHub(t)
	sub, _ := h.Subscribe()
	defer h.Unsubscribe(sub)

	h.Enqueue(Command{Kind: CommandMove, X: 0, Y: 0})
	h.step()

	select {
	case data := <-sub.C():
		t.Fatalf("unexpected broadcast: %s", data)
	default:
	}
}

func TestRemoveFeatureCommand(t *testing.T) {
	h := newTestHub(t)

	var pos grid.Point
	found := false
	for p := range h.world.Surroundings() {
		pos, found = p, true
		break
	}
	if !found {
		t.Skipf("seed 42 generated no features in the test window")
	}

	h.Enqueue(Command{Kind: CommandRemoveFeature, X: pos.X, Y: pos.Y})
	h.step()

	if h.world.FeatureAt(pos) != nil {
		t.Fatalf("feature at %v survived removal command", pos)
	}
	if h.featuresRemoved != 1 {
		t.Fatalf("featuresRemoved: got %d want 1", h.featuresRemoved)
	}

	// Removing the same cell again is a no-op: no live feature remains.
	h.Enqueue(Command{Kind: CommandRemoveFeature, X: pos.X, Y: pos.Y})
	h.step()
	if h.featuresRemoved != 1 {
		t.Fatalf("repeat removal counted: got %d want 1", h.featuresRemoved)
	}
}

func TestSaveCommandWritesFile(t *testing.T) {
	h := newTestHub(t)
	dir := t.TempDir()
	// Re-point the world's save dir through a fresh hub world.
	params := worlddata.DefaultParams()
	params.Radius = 12
	params.SaveDir = dir
	h.world = worlddata.New(42, params)
	h.world.GenerateWorld()

	h.Enqueue(Command{Kind: CommandSave})
	h.step()

	if _, err := os.Stat(worlddata.SavePath(dir, 42)); err != nil {
		t.Fatalf("save file missing: %v", err)
	}
}

func TestStopRecordsSessionBeforeDone(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	params := worlddata.DefaultParams()
	params.Radius = 12
	params.SaveDir = t.TempDir()
	world := worlddata.New(42, params)
	world.GenerateWorld()

	h := New(world, Config{TickRate: 100, Store: store})
	stop := make(chan struct{})
	go h.Run(stop)
	close(stop)

	// Done must not fire until the session row is written, so the row is
	// visible as soon as Done is.
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("hub never signalled completion")
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("session count after shutdown: got %d want 1", len(sessions))
	}
	if sessions[0].Seed != 42 {
		t.Fatalf("recorded seed: got %d want 42", sessions[0].Seed)
	}
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	h := newTestHub(t)
	sub, _ := h.Subscribe()

	for i := 1; i <= 20; i++ {
		h.Enqueue(Command{Kind: CommandMove, X: i, Y: 0})
		h.step()
	}

	// Drain whatever was buffered; the channel must be closed once the hub
	// gave up on us.
	closed := false
	for i := 0; i < 100; i++ {
		if _, ok := <-sub.C(); !ok {
			closed = true
			break
		}
	}
	if !closed {
		t.Fatalf("slow subscriber was never dropped")
	}
}

func TestCommandQueueBounded(t *testing.T) {
	h := newTestHub(t)
	for i := 0; i < maxQueuedCommands+50; i++ {
		h.Enqueue(Command{Kind: CommandMove, X: i, Y: 0})
	}
	h.mu.Lock()
	queued := len(h.commands)
	h.mu.Unlock()
	if queued != maxQueuedCommands {
		t.Fatalf("queue length: got %d want %d", queued, maxQueuedCommands)
	}
}
