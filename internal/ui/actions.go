package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/tasks"
)

func (m *Model) loadVideos(offset int) tea.Cmd {
	seq := m.searchSeq
	q := services.Query{Q: m.query, Limit: pageLimit, Offset: offset}
	return func() tea.Msg {
		page, err := m.library.Videos(m.ctx, q)
		return videosLoadedMsg{page: page, seq: seq, err: err}
	}
}

func (m *Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		page, err := m.library.Playlists(m.ctx, services.Query{Limit: pageLimit})
		return playlistsLoadedMsg{page: page, err: err}
	}
}

func (m *Model) openPlaylist(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.library.Playlist(m.ctx, id)
		return playlistLoadedMsg{detail: detail, err: err}
	}
}

func (m *Model) openDetail(id string) tea.Cmd {
	return func() tea.Msg {
		video, err := m.library.Video(m.ctx, id)
		if err != nil {
			return videoLoadedMsg{err: err}
		}

		body, err := glamour.Render(videoMarkdown(video), "dark")
		if err != nil {
			body = video.Description
		}
		return videoLoadedMsg{video: video, body: body}
	}
}

// videoMarkdown lays a video out as markdown for glamour.
func videoMarkdown(v *models.Video) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Title)
	if v.ArtistName != "" {
		fmt.Fprintf(&b, "**Artist:** %s\n\n", v.ArtistName)
	}
	fmt.Fprintf(&b, "**Duration:** %s\n\n", shared.FormatDuration(v.Duration))
	if !v.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "**Published:** %s\n\n", v.PublishedAt.Format("2006-01-02"))
	}
	if v.Description != "" {
		fmt.Fprintf(&b, "---\n\n%s\n", v.Description)
	}
	return b.String()
}

func (m *Model) createPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		created, err := m.library.CreatePlaylist(m.ctx, models.Playlist{Name: name})
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{info: fmt.Sprintf("created playlist %q", created.Name), reload: reloadPlaylists}
	}
}

func (m *Model) renamePlaylist(id, name string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.library.Playlist(m.ctx, id)
		if err != nil {
			return actionDoneMsg{err: err}
		}

		playlist := detail.Playlist
		playlist.Name = name
		if _, err := m.library.UpdatePlaylist(m.ctx, playlist); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{info: fmt.Sprintf("renamed playlist to %q", name), reload: reloadPlaylists}
	}
}

func (m *Model) deletePlaylist(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.library.DeletePlaylist(m.ctx, id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{info: "playlist deleted", reload: reloadPlaylists}
	}
}

func (m *Model) deleteVideo(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.library.DeleteVideo(m.ctx, id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{info: "video deleted", reload: reloadVideos}
	}
}

// moveEntry swaps two adjacent playlist entries optimistically and tells
// the backend. Success is silent; failure reloads the playlist to revert
// the swap.
func (m *Model) moveEntry(from, to int) tea.Cmd {
	pd := m.playlistDetail
	video := pd.Videos[from]
	pd.Videos[from], pd.Videos[to] = pd.Videos[to], pd.Videos[from]

	playlistID := pd.Playlist.ID
	return func() tea.Msg {
		if err := m.library.MovePlaylistVideo(m.ctx, playlistID, video.ID, to); err != nil {
			return actionDoneMsg{err: err, reload: reloadPlaylistDetail, targetID: playlistID}
		}
		return actionDoneMsg{}
	}
}

func (m *Model) removeEntry(index int) tea.Cmd {
	pd := m.playlistDetail
	video := pd.Videos[index]
	playlistID := pd.Playlist.ID
	return func() tea.Msg {
		if err := m.library.RemovePlaylistVideo(m.ctx, playlistID, video.ID); err != nil {
			return actionDoneMsg{err: err, reload: reloadPlaylistDetail, targetID: playlistID}
		}
		return actionDoneMsg{
			info:     fmt.Sprintf("removed %q", video.Title),
			reload:   reloadPlaylistDetail,
			targetID: playlistID,
		}
	}
}

func (m *Model) startBulkDelete(ids []string) tea.Cmd {
	if m.engine == nil {
		return m.toasts.Push(ToastError, "bulk operations unavailable")
	}
	return m.startBulk(confirmBulkDelete, "Deleting videos", func(ch chan<- tasks.ProgressUpdate) (string, error) {
		result, err := m.engine.BulkDelete(m.ctx, ch, ids)
		if err != nil {
			return "", err
		}
		summary := fmt.Sprintf("deleted %d of %d videos", result.DeletedCount, result.TotalVideos)
		if result.FailedCount > 0 {
			summary = fmt.Sprintf("%s, %d failed", summary, result.FailedCount)
		}
		return summary, nil
	})
}

func (m *Model) startBulkAdd(playlistID string, ids []string) tea.Cmd {
	if m.engine == nil {
		return m.toasts.Push(ToastError, "bulk operations unavailable")
	}
	return m.startBulk(confirmBulkAdd, "Adding to playlist", func(ch chan<- tasks.ProgressUpdate) (string, error) {
		result, err := m.engine.BulkPlaylistAdd(m.ctx, ch, playlistID, ids)
		if err != nil {
			return "", err
		}
		summary := fmt.Sprintf("added %d of %d videos", result.AddedCount, result.TotalVideos)
		if result.SkippedCount > 0 {
			summary = fmt.Sprintf("%s, %d already present", summary, result.SkippedCount)
		}
		if result.FailedCount > 0 {
			summary = fmt.Sprintf("%s, %d failed", summary, result.FailedCount)
		}
		return summary, nil
	})
}

// startBulk launches a job goroutine feeding the progress channel and
// switches to the bulk view. The goroutine stores its outcome before
// closing the channel, so the close observed by waitForProgress orders
// the reads in handleBulkDone.
func (m *Model) startBulk(kind confirmAction, title string, run func(ch chan<- tasks.ProgressUpdate) (string, error)) tea.Cmd {
	ch := make(chan tasks.ProgressUpdate, 50)
	m.bulk.kind = kind
	m.bulk.title = title
	m.bulk.channel = ch
	m.bulk.current = tasks.ProgressUpdate{}
	m.bulk.running = true
	m.bulk.summary = ""
	m.bulk.err = nil
	m.view = BulkView

	go func() {
		summary, err := run(ch)
		m.bulk.summary = summary
		m.bulk.err = err
		close(ch)
	}()

	return tea.Batch(m.bulk.spin.Tick, m.waitForProgress())
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.bulk.channel == nil {
			return bulkDoneMsg{}
		}

		update, ok := <-m.bulk.channel
		if !ok {
			return bulkDoneMsg{}
		}
		return progressMsg(update)
	}
}
