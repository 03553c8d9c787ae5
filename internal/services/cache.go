// Local SQLite implementation of [Library]
//
// Serves the library from the cache repositories when no remote server is
// configured. Contexts are accepted for interface parity; the database/sql
// calls beneath do not take them.
package services

import (
	"context"
	"errors"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/repositories"
	"github.com/desertthunder/reel/internal/shared"
)

// Cache implements the [Library] interface over the local repositories.
// Writes go straight to the database; there is no write-back to a server.
type Cache struct {
	videos     *repositories.VideoRepository
	artists    *repositories.ArtistRepository
	playlists  *repositories.PlaylistRepository
	videoCache *repositories.VideoCacheAdapter
}

// NewCache creates a cache-backed library over the given repositories.
func NewCache(videos *repositories.VideoRepository, artists *repositories.ArtistRepository, playlists *repositories.PlaylistRepository) *Cache {
	return &Cache{
		videos:     videos,
		artists:    artists,
		playlists:  playlists,
		videoCache: repositories.NewVideoCacheAdapter(videos),
	}
}

func (c *Cache) Name() string {
	return "cache"
}

// criteria converts the query to repository filter criteria, omitting
// zero values.
func (q Query) criteria() map[string]any {
	criteria := map[string]any{}
	if q.Q != "" {
		criteria["q"] = q.Q
	}
	if q.ArtistID != "" {
		criteria["artist_id"] = q.ArtistID
	}
	if q.Limit > 0 {
		criteria["limit"] = q.Limit
	}
	if q.Offset > 0 {
		criteria["offset"] = q.Offset
	}
	return criteria
}

// Videos retrieves a page of cached videos matching the query.
func (c *Cache) Videos(ctx context.Context, q Query) (*models.VideoPage, error) {
	criteria := q.criteria()

	persisted, err := c.videos.List(criteria)
	if err != nil {
		return nil, err
	}

	total, err := c.videos.Count(criteria)
	if err != nil {
		return nil, err
	}

	page := &models.VideoPage{
		Items:  make([]models.Video, 0, len(persisted)),
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	for _, v := range persisted {
		page.Items = append(page.Items, v.DTO())
	}

	return page, nil
}

// Video retrieves a single cached video by ID.
func (c *Cache) Video(ctx context.Context, id string) (*models.Video, error) {
	persisted, err := c.videos.Get(id)
	if err != nil {
		return nil, err
	}

	dto := persisted.DTO()
	return &dto, nil
}

// DeleteVideo soft-deletes a video from the cache.
func (c *Cache) DeleteVideo(ctx context.Context, id string) error {
	return c.videos.Delete(id)
}

// Artists retrieves a page of cached artists matching the query.
func (c *Cache) Artists(ctx context.Context, q Query) (*models.ArtistPage, error) {
	criteria := q.criteria()

	persisted, err := c.artists.List(criteria)
	if err != nil {
		return nil, err
	}

	total, err := c.artists.Count(criteria)
	if err != nil {
		return nil, err
	}

	page := &models.ArtistPage{
		Items:  make([]models.Artist, 0, len(persisted)),
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	for _, a := range persisted {
		page.Items = append(page.Items, a.DTO())
	}

	return page, nil
}

// Playlists retrieves a page of cached playlists matching the query.
func (c *Cache) Playlists(ctx context.Context, q Query) (*models.PlaylistPage, error) {
	criteria := q.criteria()

	persisted, err := c.playlists.List(criteria)
	if err != nil {
		return nil, err
	}

	total, err := c.playlists.Count(criteria)
	if err != nil {
		return nil, err
	}

	page := &models.PlaylistPage{
		Items:  make([]models.Playlist, 0, len(persisted)),
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	for _, p := range persisted {
		page.Items = append(page.Items, p.DTO())
	}

	return page, nil
}

// Playlist retrieves a cached playlist with its ordered videos.
func (c *Cache) Playlist(ctx context.Context, id string) (*models.PlaylistDetail, error) {
	persisted, err := c.playlists.Get(id)
	if err != nil {
		return nil, err
	}

	videos, err := c.playlists.ListVideos(id)
	if err != nil {
		return nil, err
	}

	return &models.PlaylistDetail{
		Playlist: persisted.DTO(),
		Videos:   videos,
	}, nil
}

// CreatePlaylist creates a playlist in the cache. The repository assigns
// the ID.
func (c *Cache) CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	persisted := models.NewPersistedPlaylist(0, "", playlist)

	if err := c.playlists.Create(persisted); err != nil {
		return nil, err
	}

	dto := persisted.DTO()
	return &dto, nil
}

// UpdatePlaylist updates the metadata of the playlist identified by
// playlist.ID, preserving its video count.
func (c *Cache) UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	persisted, err := c.playlists.Get(playlist.ID)
	if err != nil {
		return nil, err
	}

	updated := persisted.DTO()
	updated.Name = playlist.Name
	updated.Description = playlist.Description
	updated.Public = playlist.Public
	persisted.SetPlaylist(updated)

	if err := c.playlists.Update(persisted); err != nil {
		return nil, err
	}

	dto := persisted.DTO()
	return &dto, nil
}

// DeletePlaylist soft-deletes a playlist and removes its entries.
func (c *Cache) DeletePlaylist(ctx context.Context, id string) error {
	return c.playlists.Delete(id)
}

// AddPlaylistVideo appends a video to the end of a playlist.
func (c *Cache) AddPlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	return c.playlists.AddEntry(playlistID, videoID)
}

// RemovePlaylistVideo removes a video from a playlist, closing the
// position gap it leaves.
func (c *Cache) RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	return c.playlists.RemoveEntry(playlistID, videoID)
}

// MovePlaylistVideo moves a video to a new zero-based position.
func (c *Cache) MovePlaylistVideo(ctx context.Context, playlistID, videoID string, to int) error {
	return c.playlists.MoveEntry(playlistID, videoID, to)
}

// CacheVideo stores a remote video in the cache, keyed by its remote ID.
// An existing row is updated in place so local references survive syncs.
// When the video's artist is already cached, the artist reference is
// rewritten to the local artist ID so cache-side filtering stays
// consistent.
func (c *Cache) CacheVideo(video models.Video) error {
	if video.ArtistID != "" {
		if artist, err := c.artists.GetBySourceID(video.ArtistID); err == nil {
			video.ArtistID = artist.ID()
		}
	}

	return c.videoCache.CacheVideo(video.ID, video)
}

// CacheArtist stores a remote artist in the cache, keyed by its remote ID.
func (c *Cache) CacheArtist(artist models.Artist) error {
	existing, err := c.artists.GetBySourceID(artist.ID)
	if err == nil {
		existing.SetArtist(artist)
		return c.artists.Update(existing)
	}
	if !errors.Is(err, shared.ErrArtistNotFound) {
		return err
	}

	return c.artists.Create(models.NewPersistedArtist(0, artist.ID, artist))
}
