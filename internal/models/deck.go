package models

import "time"

// AnimationGroup represents one atomic reveal/hide step within a slide.
// Groups are ordered by Order; ties keep their original array position.
type AnimationGroup struct {
	Order      int      `json:"order"`
	ElementIDs []string `json:"elementIds"`
}

// SlideAnimations wraps the animation groups declared for a slide.
type SlideAnimations struct {
	Groups []AnimationGroup `json:"groups"`
}

// ManifestSlide describes one slide in a deck manifest. Slides are
// addressed by filename, never by array index, because the numbering
// on disk may be non-contiguous. Either Filename or File may be set;
// Filename wins when both are present.
type ManifestSlide struct {
	Number     int              `json:"number"`
	Filename   string           `json:"filename"`
	File       string           `json:"file,omitempty"`
	Title      string           `json:"title"`
	Animations *SlideAnimations `json:"animations,omitempty"`
}

// ResolveFilename returns the slide's effective filename.
func (s *ManifestSlide) ResolveFilename() string {
	if s.Filename != "" {
		return s.Filename
	}
	return s.File
}

// Manifest is the optional per-deck manifest.json document.
type Manifest struct {
	Slides []ManifestSlide `json:"slides"`
}

// NormalizedSlide is a manifest slide after validation: a resolved
// filename, a non-empty title and a sorted, de-duplicated group list.
type NormalizedSlide struct {
	Number   int              `json:"number"`
	Filename string           `json:"filename"`
	Title    string           `json:"title"`
	Groups   []AnimationGroup `json:"groups"`
}

// NormalizedManifest is what the manifest API hands to the presenter
// client. OK is false when no usable manifest exists and the client
// should fall back to probing.
type NormalizedManifest struct {
	OK     bool              `json:"ok"`
	Slides []NormalizedSlide `json:"slides,omitempty"`
}

// HistoryRecord represents one presented deck in the history store.
type HistoryRecord struct {
	DeckID        string    `json:"deckId"`
	DeckPath      string    `json:"deckPath"`
	OpenCount     int       `json:"openCount"`
	FirstOpenedAt time.Time `json:"firstOpenedAt"`
	LastOpenedAt  time.Time `json:"lastOpenedAt"`
}

// RemoteCommand is one navigation command broadcast to presenter pages.
type RemoteCommand struct {
	Action string `json:"action"`          // next, prev, goto, reveal
	Slide  int    `json:"slide,omitempty"` // 1-based, goto only
}
