package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
)

type mockLibrary struct {
	name       string
	videos     []models.Video
	artists    []models.Artist
	playlists  map[string]*models.PlaylistDetail
	deleted    []string            // IDs passed to DeleteVideo, in order
	added      map[string][]string // playlist ID -> video IDs passed to AddPlaylistVideo
	deleteErrs map[string]error    // per-video DeleteVideo failures
	addErrs    map[string]error    // per-video AddPlaylistVideo failures
	videosErr  error
	artistsErr error

	videoQueries  []services.Query
	playlistCalls int
}

func (m *mockLibrary) Name() string {
	return m.name
}

func (m *mockLibrary) Videos(ctx context.Context, q services.Query) (*models.VideoPage, error) {
	if m.videosErr != nil {
		return nil, m.videosErr
	}
	m.videoQueries = append(m.videoQueries, q)

	start := q.Offset
	if start > len(m.videos) {
		start = len(m.videos)
	}
	end := len(m.videos)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	return &models.VideoPage{
		Items:  m.videos[start:end],
		Total:  len(m.videos),
		Limit:  q.Limit,
		Offset: q.Offset,
	}, nil
}

func (m *mockLibrary) Video(ctx context.Context, id string) (*models.Video, error) {
	for i := range m.videos {
		if m.videos[i].ID == id {
			return &m.videos[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
}

func (m *mockLibrary) DeleteVideo(ctx context.Context, id string) error {
	if err := m.deleteErrs[id]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockLibrary) Artists(ctx context.Context, q services.Query) (*models.ArtistPage, error) {
	if m.artistsErr != nil {
		return nil, m.artistsErr
	}

	start := q.Offset
	if start > len(m.artists) {
		start = len(m.artists)
	}
	end := len(m.artists)
	if q.Limit > 0 && start+q.Limit < end {
		end = start + q.Limit
	}

	return &models.ArtistPage{
		Items:  m.artists[start:end],
		Total:  len(m.artists),
		Limit:  q.Limit,
		Offset: q.Offset,
	}, nil
}

func (m *mockLibrary) Playlists(ctx context.Context, q services.Query) (*models.PlaylistPage, error) {
	page := &models.PlaylistPage{Items: []models.Playlist{}, Total: len(m.playlists)}
	for _, detail := range m.playlists {
		page.Items = append(page.Items, detail.Playlist)
	}
	return page, nil
}

func (m *mockLibrary) Playlist(ctx context.Context, id string) (*models.PlaylistDetail, error) {
	m.playlistCalls++
	if detail, ok := m.playlists[id]; ok {
		return detail, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
}

func (m *mockLibrary) CreatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	return &playlist, nil
}

func (m *mockLibrary) UpdatePlaylist(ctx context.Context, playlist models.Playlist) (*models.Playlist, error) {
	return &playlist, nil
}

func (m *mockLibrary) DeletePlaylist(ctx context.Context, id string) error {
	return nil
}

func (m *mockLibrary) AddPlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	if err := m.addErrs[videoID]; err != nil {
		return err
	}
	if m.added == nil {
		m.added = map[string][]string{}
	}
	m.added[playlistID] = append(m.added[playlistID], videoID)
	return nil
}

func (m *mockLibrary) RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) error {
	return nil
}

func (m *mockLibrary) MovePlaylistVideo(ctx context.Context, playlistID, videoID string, to int) error {
	return nil
}

// Mock cache sink for sync tests
type mockCacher struct {
	videos     []models.Video
	artists    []models.Artist
	videoErrs  map[string]error // keyed by remote video ID
	artistErrs map[string]error // keyed by remote artist ID
}

func (m *mockCacher) CacheVideo(video models.Video) error {
	if err := m.videoErrs[video.ID]; err != nil {
		return err
	}
	m.videos = append(m.videos, video)
	return nil
}

func (m *mockCacher) CacheArtist(artist models.Artist) error {
	if err := m.artistErrs[artist.ID]; err != nil {
		return err
	}
	m.artists = append(m.artists, artist)
	return nil
}

func drainProgress(ch <-chan ProgressUpdate) {
	go func() {
		for range ch {
			// Drain progress channel
		}
	}()
}

func TestLibraryEngine_BulkDelete(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		library     *mockLibrary
		wantDeleted int
		wantFailed  int
		wantErrIDs  []string
	}{
		{
			name:        "all videos deleted",
			ids:         []string{"v1", "v2", "v3"},
			library:     &mockLibrary{name: "remote"},
			wantDeleted: 3,
			wantFailed:  0,
		},
		{
			name: "partial failures collected",
			ids:  []string{"v1", "v2", "v3"},
			library: &mockLibrary{
				name: "remote",
				deleteErrs: map[string]error{
					"v2": fmt.Errorf("%w: v2", shared.ErrVideoNotFound),
				},
			},
			wantDeleted: 2,
			wantFailed:  1,
			wantErrIDs:  []string{"v2"},
		},
		{
			name: "all failures still complete",
			ids:  []string{"v1", "v2"},
			library: &mockLibrary{
				name: "remote",
				deleteErrs: map[string]error{
					"v1": fmt.Errorf("%w: v1", shared.ErrVideoNotFound),
					"v2": fmt.Errorf("%w: v2", shared.ErrVideoNotFound),
				},
			},
			wantDeleted: 0,
			wantFailed:  2,
			wantErrIDs:  []string{"v1", "v2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewLibraryEngine(tt.library, nil)

			progressCh := make(chan ProgressUpdate, 100)
			drainProgress(progressCh)

			result, err := engine.BulkDelete(context.Background(), progressCh, tt.ids)
			close(progressCh)

			if err != nil {
				t.Fatalf("BulkDelete() error = %v", err)
			}

			if result.TotalVideos != len(tt.ids) {
				t.Errorf("TotalVideos = %d, want %d", result.TotalVideos, len(tt.ids))
			}
			if result.DeletedCount != tt.wantDeleted {
				t.Errorf("DeletedCount = %d, want %d", result.DeletedCount, tt.wantDeleted)
			}
			if result.FailedCount != tt.wantFailed {
				t.Errorf("FailedCount = %d, want %d", result.FailedCount, tt.wantFailed)
			}

			if len(result.Errors) != len(tt.wantErrIDs) {
				t.Fatalf("Errors count = %d, want %d", len(result.Errors), len(tt.wantErrIDs))
			}
			for i, wantID := range tt.wantErrIDs {
				if result.Errors[i].VideoID != wantID {
					t.Errorf("Errors[%d].VideoID = %s, want %s", i, result.Errors[i].VideoID, wantID)
				}
			}

			if len(tt.library.deleted) != tt.wantDeleted {
				t.Errorf("library received %d deletes, want %d", len(tt.library.deleted), tt.wantDeleted)
			}
		})
	}
}

func TestLibraryEngine_BulkDelete_ServiceError(t *testing.T) {
	engine := NewLibraryEngine(nil, nil)
	progressCh := make(chan ProgressUpdate, 10)

	_, err := engine.BulkDelete(context.Background(), progressCh, []string{"v1"})
	close(progressCh)

	if err == nil {
		t.Fatal("BulkDelete() expected error for nil library")
	}
	if !errors.Is(err, shared.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got: %v", err)
	}
}

func TestLibraryEngine_BulkDelete_ContextCancellation(t *testing.T) {
	library := &mockLibrary{name: "remote"}
	engine := NewLibraryEngine(library, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	progressCh := make(chan ProgressUpdate, 10)
	result, err := engine.BulkDelete(ctx, progressCh, []string{"v1", "v2"})
	close(progressCh)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if result == nil {
		t.Fatal("result should not be nil on cancellation")
	}
	if result.DeletedCount != 0 {
		t.Errorf("no deletes should run after cancellation, got %d", result.DeletedCount)
	}
}

func TestLibraryEngine_BulkPlaylistAdd(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		library     *mockLibrary
		wantAdded   int
		wantSkipped int
		wantFailed  int
	}{
		{
			name: "all videos added",
			ids:  []string{"v1", "v2", "v3"},
			library: &mockLibrary{
				name: "remote",
				playlists: map[string]*models.PlaylistDetail{
					"p1": {Playlist: models.Playlist{ID: "p1", Name: "Queue"}},
				},
			},
			wantAdded: 3,
		},
		{
			name: "duplicates skipped",
			ids:  []string{"v1", "v2", "v3"},
			library: &mockLibrary{
				name: "remote",
				playlists: map[string]*models.PlaylistDetail{
					"p1": {Playlist: models.Playlist{ID: "p1", Name: "Queue"}},
				},
				addErrs: map[string]error{
					"v2": fmt.Errorf("%w: v2", shared.ErrDuplicateEntry),
				},
			},
			wantAdded:   2,
			wantSkipped: 1,
		},
		{
			name: "failures collected",
			ids:  []string{"v1", "v2"},
			library: &mockLibrary{
				name: "remote",
				playlists: map[string]*models.PlaylistDetail{
					"p1": {Playlist: models.Playlist{ID: "p1", Name: "Queue"}},
				},
				addErrs: map[string]error{
					"v2": fmt.Errorf("%w: v2", shared.ErrVideoNotFound),
				},
			},
			wantAdded:  1,
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewLibraryEngine(tt.library, nil)

			progressCh := make(chan ProgressUpdate, 100)
			drainProgress(progressCh)

			result, err := engine.BulkPlaylistAdd(context.Background(), progressCh, "p1", tt.ids)
			close(progressCh)

			if err != nil {
				t.Fatalf("BulkPlaylistAdd() error = %v", err)
			}

			if result.PlaylistID != "p1" {
				t.Errorf("PlaylistID = %s, want p1", result.PlaylistID)
			}
			if result.AddedCount != tt.wantAdded {
				t.Errorf("AddedCount = %d, want %d", result.AddedCount, tt.wantAdded)
			}
			if result.SkippedCount != tt.wantSkipped {
				t.Errorf("SkippedCount = %d, want %d", result.SkippedCount, tt.wantSkipped)
			}
			if result.FailedCount != tt.wantFailed {
				t.Errorf("FailedCount = %d, want %d", result.FailedCount, tt.wantFailed)
			}

			if got := len(tt.library.added["p1"]); got != tt.wantAdded {
				t.Errorf("library received %d adds, want %d", got, tt.wantAdded)
			}
		})
	}
}

func TestLibraryEngine_BulkPlaylistAdd_MissingPlaylist(t *testing.T) {
	library := &mockLibrary{name: "remote", playlists: map[string]*models.PlaylistDetail{}}
	engine := NewLibraryEngine(library, nil)

	progressCh := make(chan ProgressUpdate, 10)
	_, err := engine.BulkPlaylistAdd(context.Background(), progressCh, "missing", []string{"v1"})
	close(progressCh)

	if !errors.Is(err, shared.ErrPlaylistNotFound) {
		t.Errorf("expected ErrPlaylistNotFound, got: %v", err)
	}
	if len(library.added) != 0 {
		t.Error("no adds should run when the playlist is missing")
	}
}

func TestLibraryEngine_Sync(t *testing.T) {
	t.Run("caches artists then videos", func(t *testing.T) {
		library := &mockLibrary{
			name: "remote",
			artists: []models.Artist{
				{ID: "chan1", Name: "Channel A"},
				{ID: "chan2", Name: "Channel B"},
			},
			videos: []models.Video{
				{ID: "v1", Title: "One", ArtistID: "chan1", ArtistName: "Channel A"},
				{ID: "v2", Title: "Two", ArtistID: "chan2", ArtistName: "Channel B"},
				{ID: "v3", Title: "Three", ArtistID: "chan1", ArtistName: "Channel A"},
			},
		}
		cacher := &mockCacher{}
		engine := NewLibraryEngine(library, cacher)

		progressCh := make(chan ProgressUpdate, 100)
		drainProgress(progressCh)

		result, err := engine.Sync(context.Background(), progressCh)
		close(progressCh)

		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if result.ArtistsSynced != 2 {
			t.Errorf("ArtistsSynced = %d, want 2", result.ArtistsSynced)
		}
		if result.VideosSynced != 3 {
			t.Errorf("VideosSynced = %d, want 3", result.VideosSynced)
		}
		if result.Failed != 0 {
			t.Errorf("Failed = %d, want 0", result.Failed)
		}

		if len(cacher.artists) != 2 || len(cacher.videos) != 3 {
			t.Errorf("cacher received %d artists and %d videos, want 2 and 3", len(cacher.artists), len(cacher.videos))
		}
		if cacher.videos[0].ID != "v1" {
			t.Errorf("first cached video = %s, want v1", cacher.videos[0].ID)
		}
	})

	t.Run("pages through large libraries", func(t *testing.T) {
		videos := make([]models.Video, 250)
		for i := range videos {
			videos[i] = models.Video{ID: fmt.Sprintf("v%d", i+1), Title: fmt.Sprintf("Video %d", i+1)}
		}
		library := &mockLibrary{name: "remote", videos: videos}
		cacher := &mockCacher{}
		engine := NewLibraryEngine(library, cacher)

		progressCh := make(chan ProgressUpdate, 100)
		drainProgress(progressCh)

		result, err := engine.Sync(context.Background(), progressCh)
		close(progressCh)

		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if result.VideosSynced != 250 {
			t.Errorf("VideosSynced = %d, want 250", result.VideosSynced)
		}

		if len(library.videoQueries) != 3 {
			t.Fatalf("expected 3 video pages, got %d", len(library.videoQueries))
		}
		for i, wantOffset := range []int{0, 100, 200} {
			if library.videoQueries[i].Offset != wantOffset {
				t.Errorf("page %d offset = %d, want %d", i, library.videoQueries[i].Offset, wantOffset)
			}
		}
	})

	t.Run("records cache failures and continues", func(t *testing.T) {
		library := &mockLibrary{
			name: "remote",
			videos: []models.Video{
				{ID: "v1", Title: "One"},
				{ID: "v2", Title: "Two"},
				{ID: "v3", Title: "Three"},
			},
		}
		cacher := &mockCacher{
			videoErrs: map[string]error{"v2": fmt.Errorf("disk full")},
		}
		engine := NewLibraryEngine(library, cacher)

		progressCh := make(chan ProgressUpdate, 100)
		drainProgress(progressCh)

		result, err := engine.Sync(context.Background(), progressCh)
		close(progressCh)

		if err != nil {
			t.Fatalf("Sync() error = %v", err)
		}

		if result.VideosSynced != 2 {
			t.Errorf("VideosSynced = %d, want 2", result.VideosSynced)
		}
		if result.Failed != 1 {
			t.Errorf("Failed = %d, want 1", result.Failed)
		}
		if len(result.Errors) != 1 || result.Errors[0].Kind != "video" || result.Errors[0].SourceID != "v2" {
			t.Errorf("unexpected sync errors: %+v", result.Errors)
		}
	})

	t.Run("fetch error aborts", func(t *testing.T) {
		library := &mockLibrary{
			name:       "remote",
			artistsErr: fmt.Errorf("connection refused"),
		}
		engine := NewLibraryEngine(library, &mockCacher{})

		progressCh := make(chan ProgressUpdate, 10)
		_, err := engine.Sync(context.Background(), progressCh)
		close(progressCh)

		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got: %v", err)
		}
	})

	t.Run("nil cache", func(t *testing.T) {
		engine := NewLibraryEngine(&mockLibrary{name: "remote"}, nil)

		progressCh := make(chan ProgressUpdate, 10)
		_, err := engine.Sync(context.Background(), progressCh)
		close(progressCh)

		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got: %v", err)
		}
		if !strings.Contains(err.Error(), "cache") {
			t.Errorf("error should mention the cache, got: %v", err)
		}
	})
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	library := &mockLibrary{name: "remote"}
	engine := NewLibraryEngine(library, nil)

	// Create a channel with buffer 0 to test non-blocking behavior
	progressCh := make(chan ProgressUpdate)

	// Don't consume from channel to simulate blocked consumer

	// BulkDelete should complete even though progress channel is not being read
	done := make(chan bool)
	go func() {
		_, err := engine.BulkDelete(context.Background(), progressCh, []string{"v1", "v2", "v3"})
		if err != nil {
			t.Errorf("BulkDelete() error = %v", err)
		}
		done <- true
	}()

	select {
	case <-done:
		// Success - operation completed even with blocked progress channel
	case <-context.Background().Done():
		t.Error("BulkDelete() should not block on progress sends")
	}
}
