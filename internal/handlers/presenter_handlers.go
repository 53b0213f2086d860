package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"slide-presenter/internal/models"
	"slide-presenter/internal/presenter"
	"slide-presenter/internal/services"
)

// PresenterHandler serves the presenter page and the deck APIs
type PresenterHandler struct {
	decks   *services.DeckService
	history *services.HistoryService
}

// NewPresenterHandler creates a new presenter handler
func NewPresenterHandler(decks *services.DeckService, history *services.HistoryService) *PresenterHandler {
	return &PresenterHandler{
		decks:   decks,
		history: history,
	}
}

// ServePresenterPage returns the generated presenter document
// GET /present/{deckId}?deckPath=...
func (ph *PresenterHandler) ServePresenterPage(w http.ResponseWriter, r *http.Request) {
	deckID := pathVar(r, "deckId")
	if deckID == "" {
		http.Error(w, "Deck id is required", http.StatusBadRequest)
		return
	}

	deckPath := r.URL.Query().Get("deckPath")
	if deckPath == "" {
		deckPath = "output/" + deckID
	}
	if services.ContainsTraversal(deckPath) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	page, err := presenter.Page(deckID, deckPath)
	if err != nil {
		log.Printf("Failed to render presenter page for %s: %v", deckID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// History is best-effort; a failed write never blocks presenting.
	if ph.history != nil {
		if err := ph.history.RecordOpen(deckID, deckPath); err != nil {
			log.Printf("Failed to record history for %s: %v", deckID, err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	setNoCache(w)
	w.Write(page)
}

// GetManifest returns a validated, sorted manifest for a deck
// GET /api/deck/manifest?deckPath=...
func (ph *PresenterHandler) GetManifest(w http.ResponseWriter, r *http.Request) {
	deckPath := r.URL.Query().Get("deckPath")
	if deckPath == "" {
		http.Error(w, "deckPath query parameter is required", http.StatusBadRequest)
		return
	}

	manifest, err := ph.decks.LoadManifest(deckPath)
	if err != nil {
		if errors.Is(err, services.ErrPathOutsideRoot) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		log.Printf("Failed to load manifest for %s: %v", deckPath, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	setNoCache(w)
	json.NewEncoder(w).Encode(manifest)
}

// GetHistory returns recently presented decks, most recent first
// GET /api/history?limit=...
func (ph *PresenterHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := ph.history.GetRecent(limit)
	if err != nil {
		log.Printf("Failed to load history: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	// Always return an array, even if empty
	if records == nil {
		records = []*models.HistoryRecord{}
	}
	json.NewEncoder(w).Encode(records)
}

// pathVar returns a decoded mux path variable. The router matches on
// encoded paths, so variables arrive percent-encoded.
func pathVar(r *http.Request, name string) string {
	raw := mux.Vars(r)[name]
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
