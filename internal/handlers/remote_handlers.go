package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"slide-presenter/internal/models"
	"slide-presenter/internal/services"
)

// The server binds the loopback interface only, so any origin that
// can reach it is the local user.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RemoteHandler exposes the presenter remote-control channel
type RemoteHandler struct {
	remote *services.RemoteService
}

// NewRemoteHandler creates a new remote control handler
func NewRemoteHandler(remote *services.RemoteService) *RemoteHandler {
	return &RemoteHandler{
		remote: remote,
	}
}

// ServeWS upgrades a presenter page (or remote) connection and keeps
// it registered for its deck until it closes. Incoming messages are
// treated as commands and rebroadcast, so a phone remote can drive
// every page on the same deck.
// GET /ws/remote/{deckId}
func (rh *RemoteHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	deckID := pathVar(r, "deckId")
	if deckID == "" {
		http.Error(w, "Deck id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade remote connection for %s: %v", deckID, err)
		return
	}

	rh.remote.Register(deckID, conn)
	defer func() {
		rh.remote.Unregister(deckID, conn)
		conn.Close()
	}()

	for {
		var cmd models.RemoteCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		if err := rh.remote.Broadcast(deckID, &cmd); err != nil {
			log.Printf("Ignoring remote command for %s: %v", deckID, err)
		}
	}
}

// BroadcastCommand relays one navigation command to every presenter
// page connected for a deck
// POST /api/remote/{deckId}
func (rh *RemoteHandler) BroadcastCommand(w http.ResponseWriter, r *http.Request) {
	deckID := pathVar(r, "deckId")
	if deckID == "" {
		http.Error(w, "Deck id is required", http.StatusBadRequest)
		return
	}

	var cmd models.RemoteCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := rh.remote.Broadcast(deckID, &cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := struct {
		Success bool `json:"success"`
		Clients int  `json:"clients"`
	}{
		Success: true,
		Clients: rh.remote.ClientCount(deckID),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
