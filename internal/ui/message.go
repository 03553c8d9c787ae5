package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/tasks"
)

// videosLoadedMsg carries one page of videos. seq ties the response to the
// query that issued it; stale responses are dropped.
type videosLoadedMsg struct {
	page *models.VideoPage
	seq  int
	err  error
}

// playlistsLoadedMsg carries the playlists page.
type playlistsLoadedMsg struct {
	page *models.PlaylistPage
	err  error
}

// playlistLoadedMsg carries one playlist with its ordered videos.
type playlistLoadedMsg struct {
	detail *models.PlaylistDetail
	err    error
}

// videoLoadedMsg carries one video and its glamour-rendered body.
type videoLoadedMsg struct {
	video *models.Video
	body  string
	err   error
}

// searchTickMsg fires after the search debounce window. A tick whose seq
// no longer matches the input's sequence is stale and ignored.
type searchTickMsg struct {
	seq int
}

// progressMsg relays one engine update into the bulk view.
type progressMsg tasks.ProgressUpdate

// bulkDoneMsg signals that the progress channel closed.
type bulkDoneMsg struct{}

// reloadKind names which list an action invalidated.
type reloadKind int

const (
	reloadNone reloadKind = iota
	reloadVideos
	reloadPlaylists
	reloadPlaylistDetail
)

// actionDoneMsg reports a completed library mutation. info becomes a
// toast when set; err becomes an error toast and wins over info.
type actionDoneMsg struct {
	info     string
	err      error
	reload   reloadKind
	targetID string
}

// toastTickMsg drives toast expiry.
type toastTickMsg time.Time

// playlistListMsg tags messages produced by the playlists list so its
// scroll applies route back to it and its render stats stay out of the
// library footer.
type playlistListMsg struct {
	inner tea.Msg
}

// tagPlaylist wraps a playlists-list command in [playlistListMsg].
func tagPlaylist(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if msg == nil {
			return nil
		}
		return playlistListMsg{inner: msg}
	}
}
