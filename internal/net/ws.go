package net

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"stack-and-slash/server/internal/hub"
)

// WSHandler upgrades observer connections and bridges them onto the hub:
// inbound messages become queued commands, outbound frames are the hub's
// state broadcasts.
type WSHandler struct {
	hub      *hub.Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler constructs the websocket bridge.
func NewWSHandler(h *hub.Hub, logger *log.Logger) *WSHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &WSHandler{
		hub:    h,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf("ws: upgrade failed: %v", err)
		return
	}

	sub, snapshot := h.hub.Subscribe()
	if snapshot != nil {
		if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
			h.hub.Unsubscribe(sub)
			conn.Close()
			return
		}
	}

	// Writer: the subscription channel closes when the hub drops us, which
	// also ends the connection.
	go func() {
		for data := range sub.C() {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				break
			}
		}
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	// Reader: decode commands until the connection dies.
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.hub.Unsubscribe(sub)
			conn.Close()
			return
		}
		var cmd hub.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			h.logger.Warnf("ws: bad command payload: %v", err)
			continue
		}
		switch cmd.Kind {
		case hub.CommandMove, hub.CommandTeleport, hub.CommandRemoveFeature, hub.CommandSave:
			h.hub.Enqueue(cmd)
		default:
			h.logger.Warnf("ws: unknown command %q", cmd.Kind)
		}
	}
}
