package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes wires all HTTP routes. Path cleaning is disabled and
// matching runs on the encoded path so the static handler sees raw
// traversal tokens before any normalization.
func SetupRoutes(static *StaticHandler, presenter *PresenterHandler, remote *RemoteHandler) *mux.Router {
	router := mux.NewRouter()
	router.SkipClean(true)
	router.UseEncodedPath()

	// Slide output and workspace assets
	router.PathPrefix("/output/").Handler(static)
	router.PathPrefix("/.slide-builder/").Handler(static)

	// Presenter page
	router.HandleFunc("/present/{deckId}", presenter.ServePresenterPage).Methods(http.MethodGet)
	router.HandleFunc("/present/{deckId}/", presenter.ServePresenterPage).Methods(http.MethodGet)

	// Deck and history APIs
	router.HandleFunc("/api/deck/manifest", presenter.GetManifest).Methods(http.MethodGet)
	router.HandleFunc("/api/history", presenter.GetHistory).Methods(http.MethodGet)

	// Remote control
	router.HandleFunc("/api/remote/{deckId}", remote.BroadcastCommand).Methods(http.MethodPost)
	router.HandleFunc("/ws/remote/{deckId}", remote.ServeWS).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return router
}
