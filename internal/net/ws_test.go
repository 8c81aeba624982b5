package net

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"stack-and-slash/server/internal/hub"
	"stack-and-slash/server/internal/worlddata"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	params := worlddata.DefaultParams()
	params.Radius = 12
	params.SaveDir = t.TempDir()
	world := worlddata.New(42, params)
	world.GenerateWorld()

	h := hub.New(world, hub.Config{TickRate: 100})
	stop := make(chan struct{})
	go h.Run(stop)

	server := httptest.NewServer(NewHTTPHandler(h, HTTPHandlerConfig{}))
	t.Cleanup(func() {
		close(stop)
		server.Close()
	})
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := startTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body: %v", body)
	}
}

func TestObserverReceivesSnapshotAndUpdates(t *testing.T) {
	server := startTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snapshot hub.StateMessage
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if snapshot.Type != "state" || snapshot.Seed != 42 {
		t.Fatalf("snapshot: %+v", snapshot)
	}

	if err := conn.WriteJSON(hub.Command{Kind: hub.CommandMove, X: 2, Y: 1}); err != nil {
		t.Fatalf("send move: %v", err)
	}

	var update hub.StateMessage
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if update.Player.X != 2 || update.Player.Y != 1 {
		t.Fatalf("player after move: %+v", update.Player)
	}
}

func TestObserverBadPayloadIsIgnored(t *testing.T) {
	server := startTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snapshot hub.StateMessage
	if err := conn.ReadJSON(&snapshot); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("send garbage: %v", err)
	}
	// The connection must survive a bad payload and still accept commands.
	if err := conn.WriteJSON(hub.Command{Kind: hub.CommandMove, X: 1, Y: 1}); err != nil {
		t.Fatalf("send move: %v", err)
	}
	var update hub.StateMessage
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update after garbage: %v", err)
	}
	if update.Player.X != 1 || update.Player.Y != 1 {
		t.Fatalf("player after move: %+v", update.Player)
	}
}
