package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"slide-presenter/internal/services"
)

// mimeTypes maps file extensions to content types. Unknown extensions
// get a generic binary type.
var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".txt":   "text/plain; charset=utf-8",
	".pdf":   "application/pdf",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
}

// StaticHandler serves slide output and workspace assets from the
// configured root, read-only. Deck content is rebuilt between reloads,
// so every response carries a non-caching directive.
type StaticHandler struct {
	rootDir string
}

// NewStaticHandler creates a static handler rooted at rootDir
func NewStaticHandler(rootDir string) *StaticHandler {
	return &StaticHandler{
		rootDir: rootDir,
	}
}

// ServeHTTP serves one file request. Only GET and HEAD are accepted.
// Traversal defense is two layers: reject any raw or percent-decoded
// ".." before touching the filesystem, then verify the resolved path
// is still contained in the root. The first check must see the
// unnormalized URL, which is why the router skips path cleaning.
func (sh *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if services.ContainsTraversal(r.URL.EscapedPath()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	resolved, err := services.ResolveWithinRoot(sh.rootDir, strings.TrimPrefix(r.URL.Path, "/"))
	if err != nil {
		if errors.Is(err, services.ErrPathOutsideRoot) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		log.Printf("Failed to resolve %s: %v", r.URL.Path, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Failed to stat %s: %v", resolved, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if info.IsDir() {
		log.Printf("Refusing to serve directory %s", resolved)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	contentType, ok := mimeTypes[strings.ToLower(filepath.Ext(resolved))]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	setNoCache(w)

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	file, err := os.Open(resolved)
	if err != nil {
		log.Printf("Failed to open %s: %v", resolved, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	// Stream rather than buffer; slide assets include video files.
	// Headers are already sent once the copy starts, so a mid-stream
	// failure can only be logged.
	if _, err := io.Copy(w, file); err != nil {
		log.Printf("Failed to stream %s: %v", resolved, err)
	}
}

// setNoCache marks a response uncacheable so rebuilt slide files are
// always reflected on reload
func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
}
