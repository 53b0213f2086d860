// Package presenter generates the self-contained presentation page
// served at /present/{deckId}. The page carries the full client
// runtime inline so it loads in one round trip over the loopback.
package presenter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
)

//go:embed assets/presenter.css
var stylesheet string

//go:embed assets/presenter.js
var clientScript string

// MaxPageBytes caps the generated document size. Everything beyond
// this must be fetched, not inlined.
const MaxPageBytes = 256 * 1024

// pageConfig holds the scalar values injected into the client script.
// They are serialized with encoding/json, which escapes <, > and &,
// so a deck id containing quotes or a script terminator cannot break
// out of the string literal.
type pageConfig struct {
	DeckID   string `json:"deckId"`
	DeckPath string `json:"deckPath"`
}

type pageData struct {
	DeckID string
	Config template.JS
	Style  template.CSS
	Script template.JS
}

var pageTemplate = template.Must(template.New("presenter").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.DeckID}} — Presenter</title>
<style>{{.Style}}</style>
</head>
<body>
<div id="sidebar">
  <div id="sidebar-title">Slides</div>
  <div id="thumb-list"></div>
</div>
<div id="main">
  <div id="stage">
    <iframe id="slide-frame" title="Current slide"></iframe>
  </div>
  <div id="notfound-overlay" class="overlay hidden">
    <div class="overlay-box">
      <p id="notfound-message">Slide file not found.</p>
      <button id="notfound-dismiss" type="button">Dismiss</button>
    </div>
  </div>
  <div id="error-overlay" class="overlay hidden">
    <div class="overlay-box">
      <p id="error-message"></p>
    </div>
  </div>
  <div id="hud">
    <span id="counter"></span>
  </div>
</div>
<script>
const PRESENTER_CONFIG = {{.Config}};
{{.Script}}
</script>
</body>
</html>
`))

// Page renders the presenter document for one deck. deckPath is the
// URL path of the deck's content root relative to the server root,
// without a leading slash (e.g. "output/my-deck").
func Page(deckID, deckPath string) ([]byte, error) {
	configJSON, err := json.Marshal(pageConfig{
		DeckID:   deckID,
		DeckPath: deckPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode page config: %w", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		DeckID: deckID,
		Config: template.JS(configJSON),
		Style:  template.CSS(stylesheet),
		Script: template.JS(clientScript),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render presenter page: %w", err)
	}

	if buf.Len() > MaxPageBytes {
		return nil, fmt.Errorf("presenter page is %d bytes, limit is %d", buf.Len(), MaxPageBytes)
	}
	return buf.Bytes(), nil
}
