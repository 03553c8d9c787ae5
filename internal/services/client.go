// REST implementation of [Library]
//
// Routes match the reel server (internal/server); any API exposing the
// same paths and pagination envelopes works.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "http://localhost:3000"

// errStatusNotFound marks a 404 response before callers map it to an
// entity-specific error.
var errStatusNotFound = errors.New("resource not found")

// Client implements the [Library] interface over the reel REST API.
// When an access token is configured the underlying HTTP client is built
// with [oauth2.NewClient] so every request carries the bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a REST client for the given base URL. A nil client
// selects [http.DefaultClient], or an oauth2 transport when token is
// non-empty.
func NewClient(baseURL, token string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if client == nil {
		if token != "" {
			src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
			client = oauth2.NewClient(context.Background(), src)
		} else {
			client = http.DefaultClient
		}
	}

	return &Client{baseURL: baseURL, httpClient: client}
}

func (c *Client) Name() string {
	return "remote"
}

// values encodes the query as URL parameters, omitting zero values.
func (q Query) values() url.Values {
	v := url.Values{}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.ArtistID != "" {
		v.Set("artist_id", q.ArtistID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// doRequest performs an HTTP request against the reel API, encoding body
// as JSON when present and decoding the response into result.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", shared.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", errStatusNotFound, endpoint)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: status %d", shared.ErrDuplicateEntry, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks whether the server is reachable and responding.
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/health", nil, nil)
}

// Videos retrieves a page of videos matching the query.
func (c *Client) Videos(ctx context.Context, q Query) (*models.VideoPage, error) {
	endpoint := "/api/videos"
	if enc := q.values().Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var page models.VideoPage
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Video retrieves a single video by ID.
func (c *Client) Video(ctx context.Context, id string) (*models.Video, error) {
	endpoint := "/api/videos/" + url.PathEscape(id)

	var video models.Video
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &video); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
		}
		return nil, err
	}

	return &video, nil
}

// DeleteVideo removes a video from the library.
func (c *Client) DeleteVideo(ctx context.Context, id string) error {
	endpoint := "/api/videos/" + url.PathEscape(id)

	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
		}
		return err
	}

	return nil
}

// Artists retrieves a page of artists matching the query.
func (c *Client) Artists(ctx context.Context, q Query) (*models.ArtistPage, error) {
	endpoint := "/api/artists"
	if enc := q.values().Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var page models.ArtistPage
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Playlists retrieves a page of playlists matching the query.
func (c *Client) Playlists(ctx context.Context, q Query) (*models.PlaylistPage, error) {
	endpoint := "/api/playlists"
	if enc := q.values().Encode(); enc != "" {
		endpoint += "?" + enc
	}

	var page models.PlaylistPage
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// Playlist retrieves a playlist with its ordered videos.
func (c *Client) Playlist(ctx context.Context, id string) (*models.PlaylistDetail, error) {
	endpoint := "/api/playlists/" + url.PathEscape(id)

	var detail models.PlaylistDetail
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &detail); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
		}
		return nil, err
	}

	return &detail, nil
}

// CreatePlaylist creates a playlist on the server.
func (c *Client) CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	if err := models.ValidatePlaylistName(playlist.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var created models.Playlist
	if err := c.doRequest(ctx, http.MethodPost, "/api/playlists", playlist, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdatePlaylist updates playlist metadata on the server.
func (c *Client) UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	if err := models.ValidatePlaylistName(playlist.Name); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	endpoint := "/api/playlists/" + url.PathEscape(playlist.ID)

	var updated models.Playlist
	if err := c.doRequest(ctx, http.MethodPut, endpoint, playlist, &updated); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlist.ID)
		}
		return nil, err
	}

	return &updated, nil
}

// DeletePlaylist removes a playlist and its entries.
func (c *Client) DeletePlaylist(ctx context.Context, id string) error {
	endpoint := "/api/playlists/" + url.PathEscape(id)

	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
		}
		return err
	}

	return nil
}

// AddPlaylistVideo appends a video to the end of a playlist.
func (c *Client) AddPlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	endpoint := "/api/playlists/" + url.PathEscape(playlistID) + "/videos"
	body := map[string]string{"video_id": videoID}

	if err := c.doRequest(ctx, http.MethodPost, endpoint, body, nil); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return err
	}

	return nil
}

// RemovePlaylistVideo removes a video from a playlist.
func (c *Client) RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	endpoint := "/api/playlists/" + url.PathEscape(playlistID) + "/videos/" + url.PathEscape(videoID)

	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
		}
		return err
	}

	return nil
}

// MovePlaylistVideo moves a video to a new zero-based position.
func (c *Client) MovePlaylistVideo(ctx context.Context, playlistID, videoID string, to int) error {
	endpoint := "/api/playlists/" + url.PathEscape(playlistID) + "/videos/" + url.PathEscape(videoID) + "/move"
	body := map[string]int{"position": to}

	if err := c.doRequest(ctx, http.MethodPost, endpoint, body, nil); err != nil {
		if errors.Is(err, errStatusNotFound) {
			return fmt.Errorf("%w: %s", shared.ErrVideoNotFound, videoID)
		}
		return err
	}

	return nil
}
