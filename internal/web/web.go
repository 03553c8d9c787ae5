// Package web serves the browser-facing landing page of the library server.
//
// The page is informational: library counts and a map of the REST API.
// Application surfaces live in the TUI, so the page is rendered
// server-side through safehtml templates embedded in the binary, with no
// scripts.
package web

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reel/internal/services"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// Endpoint is one row of the API table on the landing page.
type Endpoint struct {
	Method string
	Path   string
	About  string
}

// apiEndpoints mirrors the routes served by the server package.
var apiEndpoints = []Endpoint{
	{"GET", "/health", "service health"},
	{"GET", "/api/videos", "list videos (q, limit, offset)"},
	{"GET", "/api/videos/{id}", "fetch one video"},
	{"DELETE", "/api/videos/{id}", "delete a video"},
	{"GET", "/api/artists", "list artists"},
	{"GET", "/api/playlists", "list playlists"},
	{"POST", "/api/playlists", "create a playlist"},
	{"GET", "/api/playlists/{id}", "playlist with its ordered videos"},
	{"PUT", "/api/playlists/{id}", "update playlist metadata"},
	{"DELETE", "/api/playlists/{id}", "delete a playlist"},
	{"POST", "/api/playlists/{id}/videos", "add a video to a playlist"},
	{"DELETE", "/api/playlists/{id}/videos/{videoID}", "remove a video from a playlist"},
	{"POST", "/api/playlists/{id}/videos/{videoID}/move", "reorder a playlist video"},
}

// IndexData is the view model for the landing page.
type IndexData struct {
	Service   string
	Videos    int
	Artists   int
	Playlists int
	Endpoints []Endpoint
}

// IndexHandler renders the landing page at the server root.
type IndexHandler struct {
	library services.Library
	logger  *log.Logger
	tmpl    *template.Template
}

// NewIndexHandler parses the embedded landing page template for the given
// library backend.
func NewIndexHandler(library services.Library, logger *log.Logger) (*IndexHandler, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	tmpl, err := template.New("index.html").ParseFS(trustedFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	return &IndexHandler{library: library, logger: logger, tmpl: tmpl}, nil
}

// Routes returns the patterns the landing page serves. "/{$}" matches the
// root exactly, so unknown paths still get a 404.
func (h *IndexHandler) Routes() []string {
	return []string{"GET /{$}"}
}

// ServeHTTP renders the landing page.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	videos, artists, playlists := h.counts(r)

	data := IndexData{
		Service:   h.library.Name(),
		Videos:    videos,
		Artists:   artists,
		Playlists: playlists,
		Endpoints: apiEndpoints,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		h.logger.Error("failed to render index page", "error", err)
	}
}

// counts gathers library totals for the landing page. Count failures
// render as zero; the page is informational and shouldn't 500.
func (h *IndexHandler) counts(r *http.Request) (videos, artists, playlists int) {
	q := services.Query{Limit: 1}

	if page, err := h.library.Videos(r.Context(), q); err == nil {
		videos = page.Total
	} else {
		h.logger.Warn("failed to count videos", "error", err)
	}

	if page, err := h.library.Artists(r.Context(), q); err == nil {
		artists = page.Total
	} else {
		h.logger.Warn("failed to count artists", "error", err)
	}

	if page, err := h.library.Playlists(r.Context(), q); err == nil {
		playlists = page.Total
	} else {
		h.logger.Warn("failed to count playlists", "error", err)
	}

	return videos, artists, playlists
}
