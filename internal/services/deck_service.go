package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"slide-presenter/internal/models"
)

// DeckService reads deck manifests from the workspace root. It never
// writes to deck content.
type DeckService struct {
	rootDir string
}

// NewDeckService creates a new deck service rooted at rootDir.
func NewDeckService(rootDir string) *DeckService {
	return &DeckService{
		rootDir: rootDir,
	}
}

// ResolveDeckPath resolves a deck content path (e.g. "output/my-deck")
// against the workspace root, applying the same traversal defense as
// the static file routes.
func (ds *DeckService) ResolveDeckPath(deckPath string) (string, error) {
	if ContainsTraversal(deckPath) {
		return "", ErrPathOutsideRoot
	}
	return ResolveWithinRoot(ds.rootDir, deckPath)
}

// LoadManifest reads and normalizes a deck's manifest.json. A missing
// or structurally invalid manifest yields ok=false so the client can
// fall back to sequential probing; it is not an error.
func (ds *DeckService) LoadManifest(deckPath string) (*models.NormalizedManifest, error) {
	dir, err := ds.ResolveDeckPath(deckPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.NormalizedManifest{OK: false}, nil
		}
		return nil, fmt.Errorf("failed to read manifest for %s: %w", deckPath, err)
	}

	var manifest models.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Printf("Invalid manifest for %s, falling back to probing: %v", deckPath, err)
		return &models.NormalizedManifest{OK: false}, nil
	}

	normalized := NormalizeManifest(&manifest)
	if !normalized.OK {
		log.Printf("Manifest for %s lists no usable slides, falling back to probing", deckPath)
	}
	return normalized, nil
}

// NormalizeManifest validates a parsed manifest: slides without a
// resolvable filename are dropped, missing titles are synthesized,
// animation groups are stable-sorted by order, and an element id
// claimed by more than one group stays with the first group only.
func NormalizeManifest(manifest *models.Manifest) *models.NormalizedManifest {
	slides := make([]models.NormalizedSlide, 0, len(manifest.Slides))
	for i, slide := range manifest.Slides {
		filename := slide.ResolveFilename()
		if filename == "" {
			log.Printf("Dropping manifest slide %d: no filename", i+1)
			continue
		}
		title := slide.Title
		if title == "" {
			title = fmt.Sprintf("Slide %d", len(slides)+1)
		}
		slides = append(slides, models.NormalizedSlide{
			Number:   len(slides) + 1,
			Filename: filename,
			Title:    title,
			Groups:   normalizeGroups(slide.Animations, filename),
		})
	}

	return &models.NormalizedManifest{
		OK:     len(slides) > 0,
		Slides: slides,
	}
}

// normalizeGroups sorts a slide's animation groups and resolves
// duplicate element ids. Sorting is stable: groups with equal order
// keep their original array position.
func normalizeGroups(animations *models.SlideAnimations, filename string) []models.AnimationGroup {
	if animations == nil || len(animations.Groups) == 0 {
		return []models.AnimationGroup{}
	}

	groups := make([]models.AnimationGroup, len(animations.Groups))
	copy(groups, animations.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Order < groups[j].Order
	})

	seen := make(map[string]bool)
	result := make([]models.AnimationGroup, 0, len(groups))
	for _, group := range groups {
		ids := make([]string, 0, len(group.ElementIDs))
		for _, id := range group.ElementIDs {
			if id == "" {
				continue
			}
			if seen[id] {
				log.Printf("Duplicate animation element %q in %s, keeping first group", id, filename)
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		result = append(result, models.AnimationGroup{
			Order:      group.Order,
			ElementIDs: ids,
		})
	}
	return result
}
