package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/reel/internal/formatter"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
)

// Page size used when pulling the remote library during a sync.
const syncPageSize = 100

// BulkOpError records a single video that failed during a bulk operation.
type BulkOpError struct {
	VideoID string
	Err     error
}

// BulkDeleteResult summarizes a bulk video deletion.
type BulkDeleteResult struct {
	TotalVideos  int           // Videos requested for deletion
	DeletedCount int           // Successfully deleted
	FailedCount  int           // Failed deletions
	Errors       []BulkOpError // Individual failures
}

// BulkAddResult summarizes adding videos to a playlist in bulk.
type BulkAddResult struct {
	PlaylistID   string        // Target playlist
	TotalVideos  int           // Videos requested
	AddedCount   int           // Successfully added
	SkippedCount int           // Already in the playlist
	FailedCount  int           // Failed additions
	Errors       []BulkOpError // Individual failures
}

// SyncError records a single record that could not be cached during a sync.
type SyncError struct {
	Kind     string // "video" or "artist"
	SourceID string
	Err      error
}

// SyncResult summarizes a pull of the remote library into the local cache.
type SyncResult struct {
	ArtistsSynced int         // Artists cached
	VideosSynced  int         // Videos cached
	Failed        int         // Records that could not be cached
	Errors        []SyncError // Individual failures
}

// Engine defines long-running library operations with progress reporting.
type Engine interface {
	// BulkDelete deletes many videos from the library, continuing past individual failures.
	BulkDelete(ctx context.Context, prog chan<- ProgressUpdate, ids []string) (*BulkDeleteResult, error)

	// BulkPlaylistAdd appends many videos to a playlist, skipping videos it already contains.
	BulkPlaylistAdd(ctx context.Context, prog chan<- ProgressUpdate, playlistID string, ids []string) (*BulkAddResult, error)

	// BulkExport exports many playlists concurrently to files with a manifest summarizing the run.
	BulkExport(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts BulkExportOpts) (*formatter.BulkExportResult, error)

	// Sync pulls the remote library into the local cache page by page.
	Sync(ctx context.Context, prog chan<- ProgressUpdate) (*SyncResult, error)
}

// LibraryCacher persists remote library records during syncs.
// [services.Cache] provides the production implementation.
type LibraryCacher interface {
	CacheVideo(video models.Video) error
	CacheArtist(artist models.Artist) error
}

// LibraryEngine implements Engine against a [services.Library] backend.
type LibraryEngine struct {
	library services.Library
	cache   LibraryCacher
}

// NewLibraryEngine creates a LibraryEngine. The cache may be nil when no
// local database is configured; Sync then returns an error.
func NewLibraryEngine(library services.Library, cache LibraryCacher) *LibraryEngine {
	return &LibraryEngine{
		library: library,
		cache:   cache,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// BulkDelete deletes the given videos one by one. Individual failures are
// collected in the result rather than aborting the run.
func (e *LibraryEngine) BulkDelete(ctx context.Context, prog chan<- ProgressUpdate, ids []string) (*BulkDeleteResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	result := &BulkDeleteResult{
		TotalVideos: len(ids),
		Errors:      []BulkOpError{},
	}

	total := len(ids)
	for i, id := range ids {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.sendProgress(prog, deletingVideoUpdate(i+1, total, id))

		if err := e.library.DeleteVideo(ctx, id); err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, BulkOpError{VideoID: id, Err: err})
			e.sendProgress(prog, deleteFailedUpdate(i+1, total, id, err))
			continue
		}

		result.DeletedCount++
		e.sendProgress(prog, deletedVideoUpdate(i+1, total, id))
	}

	return result, nil
}

// BulkPlaylistAdd appends the given videos to a playlist. Videos the
// playlist already contains are counted as skipped, not failed.
func (e *LibraryEngine) BulkPlaylistAdd(ctx context.Context, prog chan<- ProgressUpdate, playlistID string, ids []string) (*BulkAddResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}

	if _, err := e.library.Playlist(ctx, playlistID); err != nil {
		return nil, fmt.Errorf("failed to load playlist %s: %w", playlistID, err)
	}

	result := &BulkAddResult{
		PlaylistID:  playlistID,
		TotalVideos: len(ids),
		Errors:      []BulkOpError{},
	}

	total := len(ids)
	for i, id := range ids {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.sendProgress(prog, addingVideoUpdate(i+1, total, id))

		err := e.library.AddPlaylistVideo(ctx, playlistID, id)
		switch {
		case err == nil:
			result.AddedCount++
			e.sendProgress(prog, addedVideoUpdate(i+1, total, id))
		case errors.Is(err, shared.ErrDuplicateEntry):
			result.SkippedCount++
			e.sendProgress(prog, addSkippedUpdate(i+1, total, id))
		default:
			result.FailedCount++
			result.Errors = append(result.Errors, BulkOpError{VideoID: id, Err: err})
			e.sendProgress(prog, addFailedUpdate(i+1, total, id, err))
		}
	}

	return result, nil
}

// Sync pulls the remote library into the local cache page by page.
// Artists are cached before videos so video rows can reference locally
// cached artists. Records that fail to cache are collected in the result.
func (e *LibraryEngine) Sync(ctx context.Context, prog chan<- ProgressUpdate) (*SyncResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library service not initialized", shared.ErrServiceUnavailable)
	}
	if e.cache == nil {
		return nil, fmt.Errorf("%w: local cache not initialized", shared.ErrServiceUnavailable)
	}

	result := &SyncResult{Errors: []SyncError{}}

	offset := 0
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		page, err := e.library.Artists(ctx, services.Query{Limit: syncPageSize, Offset: offset})
		if err != nil {
			return result, fmt.Errorf("%w: failed to fetch artists: %v", shared.ErrAPIRequest, err)
		}

		for _, artist := range page.Items {
			if err := e.cache.CacheArtist(artist); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, SyncError{Kind: "artist", SourceID: artist.ID, Err: err})
				continue
			}
			result.ArtistsSynced++
		}

		offset += len(page.Items)
		e.sendProgress(prog, syncArtistsUpdate(offset, page.Total))

		if len(page.Items) == 0 || offset >= page.Total {
			break
		}
	}

	offset = 0
	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		page, err := e.library.Videos(ctx, services.Query{Limit: syncPageSize, Offset: offset})
		if err != nil {
			return result, fmt.Errorf("%w: failed to fetch videos: %v", shared.ErrAPIRequest, err)
		}

		for _, video := range page.Items {
			if err := e.cache.CacheVideo(video); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, SyncError{Kind: "video", SourceID: video.ID, Err: err})
				continue
			}
			result.VideosSynced++
		}

		offset += len(page.Items)
		e.sendProgress(prog, syncVideosUpdate(offset, page.Total))

		if len(page.Items) == 0 || offset >= page.Total {
			break
		}
	}

	e.sendProgress(prog, syncCompletedUpdate(result))
	return result, nil
}
