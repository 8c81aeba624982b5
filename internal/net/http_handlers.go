// Package net exposes the world session over HTTP: a health endpoint and the
// websocket observer protocol.
package net

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"stack-and-slash/server/internal/hub"
)

// HTTPHandlerConfig captures the handler's dependencies.
type HTTPHandlerConfig struct {
	Logger *log.Logger
}

// NewHTTPHandler wires the observer endpoints around a running hub.
func NewHTTPHandler(h *hub.Hub, cfg HTTPHandlerConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/ws", NewWSHandler(h, cfg.Logger))
	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
