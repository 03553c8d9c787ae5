package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/ui/vlist"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LibraryView, SearchView:
		body = m.renderLibrary()
	case DetailView:
		body = m.renderDetail()
	case PlaylistsView:
		body = m.renderPlaylists()
	case PlaylistDetailView:
		body = m.renderPlaylistDetail()
	case ConfirmView:
		body = m.renderConfirm()
	case BulkView:
		body = m.renderBulk()
	}

	if bar := m.toasts.View(m.width); bar != "" {
		body = bar + "\n" + body
	}
	return body
}

func (m *Model) renderLibrary() string {
	title := styles.title.Render("Library")

	var filter string
	switch {
	case m.view == SearchView:
		filter = m.search.View()
	case m.query != "":
		filter = styles.help.Render(fmt.Sprintf("filter: %s (press / to edit)", m.query))
	default:
		filter = styles.help.Render("press / to search")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.toggle, m.keys.del, m.keys.addTo, m.keys.tab, m.keys.quit}
	if m.view == SearchView {
		helpKeys = []key.Binding{m.keys.enter, m.keys.back}
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		title, filter, m.videoList.View(), m.footer(m.statusLine(), helpKeys, m.lastRender))
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.help.Render("nothing to show")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.del, m.keys.quit}
	return fmt.Sprintf("%s\n%s", m.detailBody, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderPlaylists() string {
	heading := "Playlists"
	if m.picking {
		heading = fmt.Sprintf("Add %d videos to...", len(m.selected))
	}
	title := styles.title.Render(heading)

	var line string
	if m.prompt.active {
		label := "New playlist:"
		if m.prompt.mode == promptRename {
			label = "Rename playlist:"
		}
		line = fmt.Sprintf("%s %s", label, m.prompt.input.View())
	} else {
		line = styles.help.Render("n new • r rename • d delete")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.rename, m.keys.del, m.keys.back, m.keys.quit}
	if m.picking {
		helpKeys = []key.Binding{m.keys.enter, m.keys.back}
	}

	status := fmt.Sprintf("%d playlists", m.playlistList.Count())
	return fmt.Sprintf("%s\n%s\n%s\n%s",
		title, line, m.playlistList.View(), m.footer(status, helpKeys, m.playlistRender))
}

func (m *Model) renderPlaylistDetail() string {
	pd := m.playlistDetail
	if pd == nil {
		return styles.help.Render("no playlist loaded")
	}

	title := styles.title.Render(pd.Playlist.Name)

	var b strings.Builder
	if len(pd.Videos) == 0 {
		b.WriteString(styles.help.Render("this playlist is empty"))
	}
	for i, v := range pd.Videos {
		cursor := "  "
		if i == m.entryCursor {
			cursor = styles.ok.Render("→") + " "
		}
		line := fmt.Sprintf("%s%2d. %s • %s", cursor, i+1, v.Title, shared.FormatDuration(v.Duration))
		if m.width > 0 {
			line = ansi.Truncate(line, m.width-1, "…")
		}
		b.WriteString(line)
		if i < len(pd.Videos)-1 {
			b.WriteByte('\n')
		}
	}

	helpKeys := []key.Binding{m.keys.moveUp, m.keys.moveDown, m.keys.remove, m.keys.back, m.keys.quit}
	return fmt.Sprintf("%s\n%s\n\n%s", title, b.String(), m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderConfirm() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7D56F4")).
		Padding(1, 3).
		Render(fmt.Sprintf("%s\n\n%s", m.confirm.prompt, styles.help.Render("y confirm • n cancel")))

	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderBulk() string {
	title := styles.title.Render(m.bulk.title)

	if !m.bulk.running {
		var outcome string
		if m.bulk.err != nil {
			outcome = styles.err.Render(fmt.Sprintf("✗ %v", m.bulk.err))
		} else {
			outcome = styles.ok.Render("✓ " + m.bulk.summary)
		}
		return fmt.Sprintf("%s\n%s\n\n%s", title, outcome, styles.help.Render("esc to go back"))
	}

	cur := m.bulk.current
	var meter string
	if cur.Total > 0 {
		meter = fmt.Sprintf("%s %d/%d",
			m.bulk.progress.ViewAs(float64(cur.Step)/float64(cur.Total)), cur.Step, cur.Total)
	} else {
		meter = fmt.Sprintf("%s working", m.bulk.spin.View())
	}

	return fmt.Sprintf("%s\n%s\n\n%s", title, meter, cur.Message)
}

// statusLine summarizes the library list state, including the selection
// count fed by the list's selection messages.
func (m *Model) statusLine() string {
	parts := []string{fmt.Sprintf("%d of %d videos", m.videoList.Count(), m.total)}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("matching %q", m.query))
	}
	if n := len(m.selected); n > 0 {
		parts = append(parts, styles.ok.Render(fmt.Sprintf("%d selected", n)))
	}
	return strings.Join(parts, " • ")
}

// footer stacks the status line, the last render pass stats and the
// contextual key help.
func (m *Model) footer(status string, bindings []key.Binding, stats vlist.RenderedMsg) string {
	return fmt.Sprintf("%s\n%s\n%s", status, m.renderStats(stats), m.help.ShortHelpView(bindings))
}

func (m *Model) renderStats(r vlist.RenderedMsg) string {
	if r.TotalItems == 0 {
		return styles.help.Render("no items rendered")
	}
	return styles.help.Render(fmt.Sprintf("items %d-%d of %d rendered in %s",
		r.Start, r.End, r.TotalItems, r.RenderTime.Round(time.Microsecond)))
}
