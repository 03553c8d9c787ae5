package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/reel/internal/models"
	"github.com/desertthunder/reel/internal/services"
	"github.com/desertthunder/reel/internal/tasks"
	"github.com/desertthunder/reel/internal/ui/vlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	SearchView
	DetailView
	PlaylistsView
	PlaylistDetailView
	ConfirmView
	BulkView
)

const (
	videoRowHeight = 3
	listBuffer     = 5
	pageLimit      = 200
	searchDebounce = 250 * time.Millisecond

	// rows taken by the header, filter line, status line and footer
	uiChrome = 6
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	library services.Library
	engine  *tasks.LibraryEngine
	logger  *log.Logger

	view     ViewState
	prevView ViewState
	width    int
	height   int

	itemHeight  int
	bufferItems int
	threshold   int

	videoList    vlist.Model
	playlistList vlist.Model

	videos    []models.Video
	total     int
	playlists []models.Playlist

	detail         *models.Video
	detailBody     string
	playlistDetail *models.PlaylistDetail
	entryCursor    int

	search    textinput.Model
	searchSeq int
	query     string
	debounce  time.Duration

	selected       []string
	lastRender     vlist.RenderedMsg
	playlistRender vlist.RenderedMsg

	picking bool
	prompt  promptState
	confirm confirmState
	bulk    bulkState

	toasts ToastsModel
	help   help.Model
	keys   keyMap
}

// promptMode selects what a submitted playlist name means.
type promptMode int

const (
	promptCreate promptMode = iota
	promptRename
)

type promptState struct {
	active   bool
	mode     promptMode
	targetID string
	input    textinput.Model
}

// confirmAction enumerates the destructive operations behind the y/n
// modal.
type confirmAction int

const (
	confirmBulkDelete confirmAction = iota
	confirmBulkAdd
	confirmDeletePlaylist
	confirmDeleteVideo
)

type confirmState struct {
	action confirmAction
	prompt string
	id     string
	ids    []string
}

type bulkState struct {
	kind     confirmAction
	title    string
	channel  chan tasks.ProgressUpdate
	current  tasks.ProgressUpdate
	running  bool
	summary  string
	err      error
	spin     spinner.Model
	progress progress.Model
}

// Option configures the browse model at construction.
type Option func(*Model)

// WithListTuning overrides the windowed lists' rows per item, buffered
// items beyond each viewport edge and scroll re-render threshold. Zero or
// negative values keep the defaults.
func WithListTuning(itemHeight, buffer, threshold int) Option {
	return func(m *Model) {
		if itemHeight > 0 {
			m.itemHeight = itemHeight
		}
		if buffer > 0 {
			m.bufferItems = buffer
		}
		if threshold > 0 {
			m.threshold = threshold
		}
	}
}

// WithLogger routes component logs, such as per-item render failures, to
// the given logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, library services.Library, engine *tasks.LibraryEngine, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "search videos"
	search.Prompt = "/ "
	search.CharLimit = 120

	name := textinput.New()
	name.Placeholder = "playlist name"
	name.Prompt = "> "
	name.CharLimit = models.MaxPlaylistNameLength

	m := &Model{
		ctx:         ctx,
		library:     library,
		engine:      engine,
		view:        LibraryView,
		itemHeight:  videoRowHeight,
		bufferItems: listBuffer,
		threshold:   -1,
		search:      search,
		debounce:    searchDebounce,
		toasts:      NewToasts(),
		help:        help.New(),
		keys:        newKeyMap(),
	}
	for _, opt := range opts {
		opt(m)
	}

	listOpts := []vlist.Option{
		vlist.WithItemHeight(m.itemHeight),
		vlist.WithBuffer(m.bufferItems),
	}
	if m.threshold >= 0 {
		listOpts = append(listOpts, vlist.WithThreshold(m.threshold))
	}
	if m.logger != nil {
		listOpts = append(listOpts, vlist.WithLogger(m.logger))
	}

	m.prompt.input = name
	m.videoList = vlist.New(renderVideoItem, listOpts...)
	m.playlistList = vlist.New(renderPlaylistItem, listOpts...)
	m.bulk.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok))
	m.bulk.progress = progress.New(progress.WithDefaultGradient())

	return m
}

// Init kicks off the initial library and playlist loads.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadVideos(0), m.loadPlaylists())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.bulk.progress.Width = progressWidth(msg.Width)

		listH := msg.Height - uiChrome
		if listH < m.videoList.ItemHeight() {
			listH = m.videoList.ItemHeight()
		}
		return m, tea.Batch(
			m.videoList.SetSize(msg.Width, listH),
			tagPlaylist(m.playlistList.SetSize(msg.Width, listH)),
		)

	case spinner.TickMsg:
		if m.view == BulkView && m.bulk.running {
			var cmd tea.Cmd
			m.bulk.spin, cmd = m.bulk.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case toastTickMsg:
		var cmd tea.Cmd
		m.toasts, cmd = m.toasts.Update(msg)
		return m, cmd

	case vlist.SelectionMsg:
		m.selected = msg.Selection
		return m, nil

	case vlist.RenderedMsg:
		m.lastRender = msg
		return m, nil

	case playlistListMsg:
		switch inner := msg.inner.(type) {
		case vlist.RenderedMsg:
			m.playlistRender = inner
			return m, nil
		case vlist.SelectionMsg:
			return m, nil
		default:
			var cmd tea.Cmd
			m.playlistList, cmd = m.playlistList.Update(msg.inner)
			return m, tagPlaylist(cmd)
		}

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.query = strings.TrimSpace(m.search.Value())
		return m, m.loadVideos(0)

	case videosLoadedMsg:
		return m.handleVideosLoaded(msg)

	case playlistsLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(ToastError, fmt.Sprintf("failed to load playlists: %v", msg.err))
		}
		m.playlists = msg.page.Items
		return m, tagPlaylist(m.playlistList.SetItems(playlistItems(m.playlists)))

	case playlistLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(ToastError, fmt.Sprintf("failed to load playlist: %v", msg.err))
		}
		m.playlistDetail = msg.detail
		if m.entryCursor >= len(msg.detail.Videos) {
			m.entryCursor = len(msg.detail.Videos) - 1
		}
		if m.entryCursor < 0 {
			m.entryCursor = 0
		}
		m.view = PlaylistDetailView
		return m, nil

	case videoLoadedMsg:
		if msg.err != nil {
			return m, m.toasts.Push(ToastError, fmt.Sprintf("failed to load video: %v", msg.err))
		}
		m.detail = msg.video
		m.detailBody = msg.body
		m.view = DetailView
		return m, nil

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case progressMsg:
		m.bulk.current = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case bulkDoneMsg:
		return m.handleBulkDone()

	case tea.KeyMsg:
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case PlaylistsView:
			return m.handlePlaylistsKeys(msg)
		case PlaylistDetailView:
			return m.handlePlaylistDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case BulkView:
			return m.handleBulkKeys(msg)
		}
		return m, nil

	case tea.MouseMsg:
		switch m.view {
		case LibraryView, SearchView:
			var cmd tea.Cmd
			m.videoList, cmd = m.videoList.Update(msg)
			return m, cmd
		case PlaylistsView:
			var cmd tea.Cmd
			m.playlistList, cmd = m.playlistList.Update(msg)
			return m, tagPlaylist(cmd)
		}
		return m, nil
	}

	// scroll applies and other component messages; each list ignores the
	// other's by instance id
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	cmds = append(cmds, cmd)
	m.playlistList, cmd = m.playlistList.Update(msg)
	cmds = append(cmds, tagPlaylist(cmd))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleVideosLoaded(msg videosLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.searchSeq {
		return m, nil
	}
	if msg.err != nil {
		return m, m.toasts.Push(ToastError, fmt.Sprintf("failed to load videos: %v", msg.err))
	}

	if msg.page.Offset == 0 {
		m.videos = msg.page.Items
	} else {
		m.videos = append(m.videos, msg.page.Items...)
	}
	m.total = msg.page.Total

	cmd := m.videoList.SetItems(videoItems(m.videos))
	if msg.page.Next != "" && len(m.videos) < msg.page.Total {
		return m, tea.Batch(cmd, m.loadVideos(len(m.videos)))
	}
	return m, cmd
}

func (m *Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg.err != nil {
		cmds = append(cmds, m.toasts.Push(ToastError, msg.err.Error()))
	} else if msg.info != "" {
		cmds = append(cmds, m.toasts.Push(ToastInfo, msg.info))
	}

	switch msg.reload {
	case reloadVideos:
		cmds = append(cmds, m.loadVideos(0))
	case reloadPlaylists:
		cmds = append(cmds, m.loadPlaylists())
	case reloadPlaylistDetail:
		cmds = append(cmds, m.openPlaylist(msg.targetID))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleBulkDone() (tea.Model, tea.Cmd) {
	m.bulk.running = false
	m.bulk.channel = nil

	var cmds []tea.Cmd
	if m.bulk.err != nil {
		cmds = append(cmds, m.toasts.Push(ToastError, fmt.Sprintf("bulk operation failed: %v", m.bulk.err)))
	} else if m.bulk.summary != "" {
		cmds = append(cmds, m.toasts.Push(ToastInfo, m.bulk.summary))
	}

	cmds = append(cmds, m.videoList.ClearSelection())
	switch m.bulk.kind {
	case confirmBulkDelete:
		cmds = append(cmds, m.loadVideos(0))
	case confirmBulkAdd:
		cmds = append(cmds, m.loadPlaylists())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.enter):
		item, ok := m.videoList.CursorItem().(videoItem)
		if !ok {
			return m, nil
		}
		return m, m.openDetail(item.video.ID)

	case key.Matches(msg, m.keys.toggle):
		return m, m.videoList.ToggleSelect(m.videoList.Cursor())

	case key.Matches(msg, m.keys.selectAll):
		return m, m.videoList.SelectAll()

	case key.Matches(msg, m.keys.clearSel):
		return m, m.videoList.ClearSelection()

	case key.Matches(msg, m.keys.back):
		if len(m.selected) > 0 {
			return m, m.videoList.ClearSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.del):
		ids := m.deletionTargets()
		if len(ids) == 0 {
			return m, nil
		}
		m.confirmTo(confirmState{action: confirmBulkDelete, ids: ids, prompt: deletePrompt(len(ids))})
		return m, nil

	case key.Matches(msg, m.keys.addTo):
		if len(m.selected) == 0 {
			return m, nil
		}
		m.picking = true
		m.view = PlaylistsView
		return m, nil

	case key.Matches(msg, m.keys.tab):
		m.view = PlaylistsView
		return m, nil

	case key.Matches(msg, m.keys.refresh):
		return m, m.loadVideos(0)
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()

	case tea.KeyEsc:
		m.search.Blur()
		m.view = LibraryView
		return m, nil

	case tea.KeyEnter:
		m.searchSeq++
		m.query = strings.TrimSpace(m.search.Value())
		m.search.Blur()
		m.view = LibraryView
		return m, m.loadVideos(0)
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(m.debounce, func(time.Time) tea.Msg { return searchTickMsg{seq: seq} })
	return m, tea.Batch(cmd, debounce)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.view = LibraryView
		return m, nil

	case key.Matches(msg, m.keys.del):
		if m.detail == nil {
			return m, nil
		}
		m.confirmTo(confirmState{action: confirmDeleteVideo, id: m.detail.ID, prompt: deletePrompt(1)})
		return m, nil
	}
	return m, nil
}

func (m *Model) handlePlaylistsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.active {
		return m.handlePromptKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.back):
		m.picking = false
		m.view = LibraryView
		return m, nil

	case key.Matches(msg, m.keys.tab):
		m.view = LibraryView
		return m, nil

	case key.Matches(msg, m.keys.enter):
		item, ok := m.playlistList.CursorItem().(playlistItem)
		if !ok {
			return m, nil
		}
		if m.picking {
			m.confirmTo(confirmState{
				action: confirmBulkAdd,
				id:     item.playlist.ID,
				ids:    m.selected,
				prompt: addPrompt(len(m.selected), item.playlist.Name),
			})
			return m, nil
		}
		m.entryCursor = 0
		return m, m.openPlaylist(item.playlist.ID)

	case key.Matches(msg, m.keys.create):
		m.prompt.active = true
		m.prompt.mode = promptCreate
		m.prompt.targetID = ""
		m.prompt.input.SetValue("")
		m.prompt.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.rename):
		item, ok := m.playlistList.CursorItem().(playlistItem)
		if !ok {
			return m, nil
		}
		m.prompt.active = true
		m.prompt.mode = promptRename
		m.prompt.targetID = item.playlist.ID
		m.prompt.input.SetValue(item.playlist.Name)
		m.prompt.input.CursorEnd()
		m.prompt.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.del):
		item, ok := m.playlistList.CursorItem().(playlistItem)
		if !ok {
			return m, nil
		}
		m.confirmTo(confirmState{
			action: confirmDeletePlaylist,
			id:     item.playlist.ID,
			prompt: fmt.Sprintf("Delete playlist %q?", item.playlist.Name),
		})
		return m, nil

	case key.Matches(msg, m.keys.refresh):
		return m, m.loadPlaylists()
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, tagPlaylist(cmd)
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.quit()

	case tea.KeyEsc:
		m.prompt.active = false
		m.prompt.input.Blur()
		return m, nil

	case tea.KeyEnter:
		name := strings.TrimSpace(m.prompt.input.Value())
		if err := models.ValidatePlaylistName(name); err != nil {
			return m, m.toasts.Push(ToastError, err.Error())
		}
		mode, target := m.prompt.mode, m.prompt.targetID
		m.prompt.active = false
		m.prompt.input.Blur()
		if mode == promptRename {
			return m, m.renamePlaylist(target, name)
		}
		return m, m.createPlaylist(name)
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pd := m.playlistDetail

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.back):
		m.view = PlaylistsView
		return m, m.loadPlaylists()

	case key.Matches(msg, m.keys.moveDown):
		if pd != nil && m.entryCursor < len(pd.Videos)-1 {
			cmd := m.moveEntry(m.entryCursor, m.entryCursor+1)
			m.entryCursor++
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		if pd != nil && m.entryCursor > 0 {
			cmd := m.moveEntry(m.entryCursor, m.entryCursor-1)
			m.entryCursor--
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.remove):
		if pd != nil && len(pd.Videos) > 0 {
			return m, m.removeEntry(m.entryCursor)
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if pd != nil && m.entryCursor < len(pd.Videos)-1 {
			m.entryCursor++
		}
	case "k", "up":
		if m.entryCursor > 0 {
			m.entryCursor--
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		confirm := m.confirm
		m.confirm = confirmState{}
		switch confirm.action {
		case confirmBulkDelete:
			return m, m.startBulkDelete(confirm.ids)
		case confirmBulkAdd:
			m.picking = false
			return m, m.startBulkAdd(confirm.id, confirm.ids)
		case confirmDeletePlaylist:
			m.view = PlaylistsView
			return m, m.deletePlaylist(confirm.id)
		case confirmDeleteVideo:
			m.view = LibraryView
			return m, m.deleteVideo(confirm.id)
		}
		return m, nil

	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.confirm = confirmState{}
		m.view = m.prevView
		return m, nil

	case key.Matches(msg, m.keys.quit):
		return m.quit()
	}
	return m, nil
}

func (m *Model) handleBulkKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		if !m.bulk.running {
			m.view = LibraryView
		}
		return m, nil
	}
	return m, nil
}

// confirmTo swaps to the confirm modal, remembering where to return.
func (m *Model) confirmTo(c confirmState) {
	m.confirm = c
	m.prevView = m.view
	m.view = ConfirmView
}

// deletionTargets returns the selection, or the cursor item when nothing
// is selected.
func (m *Model) deletionTargets() []string {
	if len(m.selected) > 0 {
		ids := make([]string, len(m.selected))
		copy(ids, m.selected)
		return ids
	}
	if item, ok := m.videoList.CursorItem().(videoItem); ok {
		return []string{item.video.ID}
	}
	return nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.videoList.Destroy()
	m.playlistList.Destroy()
	return m, tea.Quit
}

func deletePrompt(n int) string {
	if n == 1 {
		return "Delete this video from the library?"
	}
	return fmt.Sprintf("Delete %d videos from the library?", n)
}

func addPrompt(n int, name string) string {
	if n == 1 {
		return fmt.Sprintf("Add 1 video to %q?", name)
	}
	return fmt.Sprintf("Add %d videos to %q?", n, name)
}

func progressWidth(width int) int {
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}
