// package services defines interface Library for browsing and editing a video library
//
// Remote REST server, local SQLite cache
package services

import (
	"context"

	"github.com/desertthunder/reel/internal/models"
)

// Library defines the interface for video library backends (remote REST server, local cache) that the TUI and CLI browse and edit.
type Library interface {
	// Videos retrieves a page of videos matching the query.
	Videos(ctx context.Context, q Query) (*models.VideoPage, error)

	// Video retrieves a single video by ID.
	Video(ctx context.Context, id string) (*models.Video, error)

	// DeleteVideo removes a video from the library.
	DeleteVideo(ctx context.Context, id string) error

	// Artists retrieves a page of artists matching the query.
	Artists(ctx context.Context, q Query) (*models.ArtistPage, error)

	// Playlists retrieves a page of playlists matching the query.
	Playlists(ctx context.Context, q Query) (*models.PlaylistPage, error)

	// Playlist retrieves a playlist with its ordered videos.
	Playlist(ctx context.Context, id string) (*models.PlaylistDetail, error)

	// CreatePlaylist creates a playlist from the given metadata.
	// The backend assigns the ID.
	CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error)

	// UpdatePlaylist updates the name, description and visibility of the
	// playlist identified by playlist.ID.
	UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error)

	// DeletePlaylist removes a playlist and its entries.
	DeletePlaylist(ctx context.Context, id string) error

	// AddPlaylistVideo appends a video to the end of a playlist.
	AddPlaylistVideo(ctx context.Context, playlistID, videoID string) error

	// RemovePlaylistVideo removes a video from a playlist, closing the
	// position gap it leaves.
	RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error

	// MovePlaylistVideo moves a video to a new zero-based position within
	// a playlist. Out of range positions clamp to the ends.
	MovePlaylistVideo(ctx context.Context, playlistID, videoID string, to int) error

	// Name returns the name of the backend (e.g., "remote", "cache")
	Name() string
}

// Query narrows and pages the list operations of a [Library].
// Zero values are ignored.
type Query struct {
	Q        string
	ArtistID string
	Limit    int
	Offset   int
}
