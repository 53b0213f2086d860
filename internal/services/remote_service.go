package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"slide-presenter/internal/models"
)

// RemoteService broadcasts navigation commands to the presenter pages
// connected for each deck. Pages join over a websocket; host tooling
// or a phone remote issues commands over HTTP and every page for that
// deck applies them.
type RemoteService struct {
	mu    sync.Mutex
	decks map[string]map[*websocket.Conn]bool
}

// NewRemoteService creates a new remote control service
func NewRemoteService() *RemoteService {
	return &RemoteService{
		decks: make(map[string]map[*websocket.Conn]bool),
	}
}

// Register adds a presenter page connection for a deck
func (rs *RemoteService) Register(deckID string, conn *websocket.Conn) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.decks[deckID] == nil {
		rs.decks[deckID] = make(map[*websocket.Conn]bool)
	}
	rs.decks[deckID][conn] = true
	log.Printf("Remote client connected: deck=%s, clients=%d", deckID, len(rs.decks[deckID]))
}

// Unregister removes a presenter page connection for a deck
func (rs *RemoteService) Unregister(deckID string, conn *websocket.Conn) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	clients := rs.decks[deckID]
	if clients == nil {
		return
	}
	delete(clients, conn)
	if len(clients) == 0 {
		delete(rs.decks, deckID)
	}
	log.Printf("Remote client disconnected: deck=%s", deckID)
}

// ClientCount returns how many pages are connected for a deck
func (rs *RemoteService) ClientCount(deckID string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.decks[deckID])
}

// Broadcast sends a command to every page connected for a deck.
// Connections that fail to write are dropped.
func (rs *RemoteService) Broadcast(deckID string, cmd *models.RemoteCommand) error {
	if err := ValidateRemoteCommand(cmd); err != nil {
		return err
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal remote command: %w", err)
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	clients := rs.decks[deckID]
	for conn := range clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Dropping remote client for deck %s: %v", deckID, err)
			conn.Close()
			delete(clients, conn)
		}
	}
	if len(clients) == 0 {
		delete(rs.decks, deckID)
	}
	return nil
}

// CloseAll closes every connection, for server shutdown
func (rs *RemoteService) CloseAll() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	for deckID, clients := range rs.decks {
		for conn := range clients {
			conn.Close()
		}
		delete(rs.decks, deckID)
	}
}

// ValidateRemoteCommand checks a command's action and slide target
func ValidateRemoteCommand(cmd *models.RemoteCommand) error {
	if cmd == nil {
		return fmt.Errorf("command is required")
	}
	switch cmd.Action {
	case "next", "prev", "reveal":
		return nil
	case "goto":
		if cmd.Slide < 1 {
			return fmt.Errorf("goto requires a slide number >= 1, got %d", cmd.Slide)
		}
		return nil
	default:
		return fmt.Errorf("unknown action: %q", cmd.Action)
	}
}
