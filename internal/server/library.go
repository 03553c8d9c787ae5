package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
)

// defaultPageLimit caps list responses when the client doesn't ask for a
// page size.
const defaultPageLimit = 50

// LibraryHandler serves the library REST API over a [services.Library]
// backend. reel serve fronts the local SQLite cache with it, but any
// implementation of the interface works.
type LibraryHandler struct {
	library services.Library
	logger  *log.Logger
}

// NewLibraryHandler creates the API handler for the given library backend.
func NewLibraryHandler(library services.Library, logger *log.Logger) *LibraryHandler {
	return &LibraryHandler{library: library, logger: logger}
}

// Routes returns the method-qualified patterns the API serves.
func (h *LibraryHandler) Routes() []string {
	return []string{
		"GET /health",
		"GET /api/videos",
		"GET /api/videos/{id}",
		"DELETE /api/videos/{id}",
		"GET /api/artists",
		"GET /api/playlists",
		"POST /api/playlists",
		"GET /api/playlists/{id}",
		"PUT /api/playlists/{id}",
		"DELETE /api/playlists/{id}",
		"POST /api/playlists/{id}/videos",
		"DELETE /api/playlists/{id}/videos/{videoID}",
		"POST /api/playlists/{id}/videos/{videoID}/move",
	}
}

// ServeHTTP dispatches on the mux pattern that matched the request.
// Requests that reach the handler without being routed through a mux
// carry no pattern and get a 404.
func (h *LibraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /health":
		h.health(w, r)
	case "GET /api/videos":
		h.listVideos(w, r)
	case "GET /api/videos/{id}":
		h.getVideo(w, r)
	case "DELETE /api/videos/{id}":
		h.deleteVideo(w, r)
	case "GET /api/artists":
		h.listArtists(w, r)
	case "GET /api/playlists":
		h.listPlaylists(w, r)
	case "POST /api/playlists":
		h.createPlaylist(w, r)
	case "GET /api/playlists/{id}":
		h.getPlaylist(w, r)
	case "PUT /api/playlists/{id}":
		h.updatePlaylist(w, r)
	case "DELETE /api/playlists/{id}":
		h.deletePlaylist(w, r)
	case "POST /api/playlists/{id}/videos":
		h.addPlaylistVideo(w, r)
	case "DELETE /api/playlists/{id}/videos/{videoID}":
		h.removePlaylistVideo(w, r)
	case "POST /api/playlists/{id}/videos/{videoID}/move":
		h.movePlaylistVideo(w, r)
	default:
		http.NotFound(w, r)
	}
}

// parseQuery reads filter and pagination parameters from the request URL.
func parseQuery(r *http.Request) services.Query {
	q := services.Query{
		Q:        r.URL.Query().Get("q"),
		ArtistID: r.URL.Query().Get("artist_id"),
		Limit:    defaultPageLimit,
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		q.Offset = offset
	}

	return q
}

// nextURL builds the follow-up page link for a list response, or "" when
// the page reaches the end of the results.
func nextURL(path string, q services.Query, fetched, total int) string {
	next := q.Offset + fetched
	if fetched == 0 || next >= total {
		return ""
	}

	v := url.Values{}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.ArtistID != "" {
		v.Set("artist_id", q.ArtistID)
	}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(next))

	return path + "?" + v.Encode()
}

// writeJSON encodes v as the response body with the given status.
func (h *LibraryHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP status codes, mirroring the
// decoding the REST client does on the other side of the wire.
func (h *LibraryHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, shared.ErrVideoNotFound),
		errors.Is(err, shared.ErrArtistNotFound),
		errors.Is(err, shared.ErrPlaylistNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrDuplicateEntry):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *LibraryHandler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": h.library.Name(),
	})
}

func (h *LibraryHandler) listVideos(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)

	page, err := h.library.Videos(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}

	page.Next = nextURL("/api/videos", q, len(page.Items), page.Total)
	h.writeJSON(w, http.StatusOK, page)
}

func (h *LibraryHandler) getVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.library.Video(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, video)
}

func (h *LibraryHandler) deleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.library.DeleteVideo(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) listArtists(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)

	page, err := h.library.Artists(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}

	page.Next = nextURL("/api/artists", q, len(page.Items), page.Total)
	h.writeJSON(w, http.StatusOK, page)
}

func (h *LibraryHandler) listPlaylists(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r)

	page, err := h.library.Playlists(r.Context(), q)
	if err != nil {
		h.writeError(w, err)
		return
	}

	page.Next = nextURL("/api/playlists", q, len(page.Items), page.Total)
	h.writeJSON(w, http.StatusOK, page)
}

func (h *LibraryHandler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var playlist models.Playlist
	if err := json.NewDecoder(r.Body).Decode(&playlist); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	if err := models.ValidatePlaylistName(playlist.Name); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	created, err := h.library.CreatePlaylist(r.Context(), playlist)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, created)
}

func (h *LibraryHandler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	detail, err := h.library.Playlist(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, detail)
}

func (h *LibraryHandler) updatePlaylist(w http.ResponseWriter, r *http.Request) {
	var playlist models.Playlist
	if err := json.NewDecoder(r.Body).Decode(&playlist); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	// The path owns the identity, whatever the body says.
	playlist.ID = r.PathValue("id")

	if err := models.ValidatePlaylistName(playlist.Name); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	updated, err := h.library.UpdatePlaylist(r.Context(), playlist)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, updated)
}

func (h *LibraryHandler) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	if err := h.library.DeletePlaylist(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) addPlaylistVideo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VideoID string `json:"video_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	if body.VideoID == "" {
		h.writeError(w, fmt.Errorf("%w: video_id is required", shared.ErrInvalidInput))
		return
	}

	if err := h.library.AddPlaylistVideo(r.Context(), r.PathValue("id"), body.VideoID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *LibraryHandler) removePlaylistVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.library.RemovePlaylistVideo(r.Context(), r.PathValue("id"), r.PathValue("videoID")); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) movePlaylistVideo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Position int `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err))
		return
	}

	if err := h.library.MovePlaylistVideo(r.Context(), r.PathValue("id"), r.PathValue("videoID"), body.Position); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
