package ui

import (
	"fmt"

	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/ui/vlist"
)

var (
	_ vlist.Item = videoItem{}
	_ vlist.Item = playlistItem{}
)

// videoItem wraps [models.Video] to implement [vlist.Item].
type videoItem struct {
	video models.Video
}

func (i videoItem) ID() string { return i.video.ID }

// playlistItem wraps [models.Playlist] to implement [vlist.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) ID() string { return i.playlist.ID }

func videoItems(videos []models.Video) []vlist.Item {
	items := make([]vlist.Item, len(videos))
	for i, v := range videos {
		items[i] = videoItem{video: v}
	}
	return items
}

func playlistItems(playlists []models.Playlist) []vlist.Item {
	items := make([]vlist.Item, len(playlists))
	for i, p := range playlists {
		items[i] = playlistItem{playlist: p}
	}
	return items
}

// renderVideoItem draws a video as a title row and a dimmed metadata row;
// the third row stays blank as a separator.
func renderVideoItem(item vlist.Item, index, height, width int) string {
	v := item.(videoItem).video

	meta := shared.FormatDuration(v.Duration)
	if v.ArtistName != "" {
		meta = fmt.Sprintf("%s • %s", v.ArtistName, meta)
	}

	return fmt.Sprintf("%s\n%s", v.Title, styles.help.Render(meta))
}

// renderPlaylistItem draws a playlist as a name row and a dimmed count row.
func renderPlaylistItem(item vlist.Item, index, height, width int) string {
	p := item.(playlistItem).playlist

	meta := fmt.Sprintf("%d videos", p.VideoCount)
	if p.Public {
		meta = fmt.Sprintf("%s • public", meta)
	}
	if p.Description != "" {
		meta = fmt.Sprintf("%s • %s", meta, p.Description)
	}

	return fmt.Sprintf("%s\n%s", p.Name, styles.help.Render(meta))
}
