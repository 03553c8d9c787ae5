package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchPlaylists Phase = iota
	ExportPlaylist
	DeleteVideo
	AddPlaylistVideo
	SyncArtists
	SyncVideos
)

func (p Phase) String() string {
	switch p {
	case FetchPlaylists:
		return "fetch_playlists"
	case ExportPlaylist:
		return "export_playlist"
	case DeleteVideo:
		return "delete_video"
	case AddPlaylistVideo:
		return "add_playlist_video"
	case SyncArtists:
		return "sync_artists"
	case SyncVideos:
		return "sync_videos"
	default:
		return ""
	}
}

func fetchPlaylistsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    step,
		Total:   total,
		Message: "Fetching playlists...",
	}
}

func exportingPlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func deletingVideoUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Deleting video %s...", step, total, id),
	}
}

func deletedVideoUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ Deleted %s", step, total, id),
	}
}

func deleteFailedUpdate(step, total int, id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeleteVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, id, err),
	}
}

func addingVideoUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddPlaylistVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding video %s...", step, total, id),
	}
}

func addedVideoUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddPlaylistVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ Added %s", step, total, id),
	}
}

func addSkippedUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddPlaylistVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] − %s already in playlist", step, total, id),
	}
}

func addFailedUpdate(step, total int, id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddPlaylistVideo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, id, err),
	}
}

func syncArtistsUpdate(fetched, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncArtists,
		Step:    fetched,
		Total:   total,
		Message: fmt.Sprintf("Caching artists (%d/%d)...", fetched, total),
	}
}

func syncVideosUpdate(fetched, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncVideos,
		Step:    fetched,
		Total:   total,
		Message: fmt.Sprintf("Caching videos (%d/%d)...", fetched, total),
	}
}

func syncCompletedUpdate(result *SyncResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncVideos,
		Step:    result.VideosSynced,
		Total:   result.VideosSynced,
		Message: fmt.Sprintf("✓ Cached %d videos and %d artists", result.VideosSynced, result.ArtistsSynced),
		Data:    result,
	}
}
