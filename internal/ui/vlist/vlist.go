package vlist

import (
	"slices"
	"sort"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const (
	defaultItemHeight = 3
	defaultBuffer     = 5

	// gutter: cursor bar, selection mark, one space
	gutterWidth = 3

	wheelScrollRows = 3
)

// lastID distinguishes coexisting list instances so scroll messages only
// reach the model that scheduled them.
var lastID atomic.Int64

func nextID() int64 { return lastID.Add(1) }

// Item is one list entry. The component treats it as opaque beyond its
// stable identifier, which keys the selection set.
type Item interface {
	ID() string
}

// RenderFunc produces the content for one item: up to height lines joined
// by newlines, each at most width columns. The component clips, pads and
// truncates whatever comes back, so a misbehaving callback degrades one
// item instead of the frame.
type RenderFunc func(item Item, index, height, width int) string

// Option configures a [Model] at construction.
type Option func(*Model)

// WithItemHeight sets the fixed number of rows per item.
func WithItemHeight(rows int) Option {
	return func(m *Model) {
		if rows > 0 {
			m.itemH = rows
		}
	}
}

// WithBuffer sets how many extra items are materialized beyond each edge
// of the visible window to mask pop-in while scrolling.
func WithBuffer(items int) Option {
	return func(m *Model) {
		if items >= 0 {
			m.buffer = items
		}
	}
}

// WithThreshold sets the minimum scroll distance, in rows, before the
// window is re-materialized. Defaults to one item height.
func WithThreshold(rows int) Option {
	return func(m *Model) {
		if rows >= 0 {
			m.threshold = rows
		}
	}
}

// WithKeyMap replaces the navigation bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// WithStyles replaces the component chrome styles.
func WithStyles(styles Styles) Option {
	return func(m *Model) { m.styles = styles }
}

// WithLogger sets an optional logger for per-item render failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// Model is a windowed list. The zero value is not usable; construct with
// [New].
type Model struct {
	id     int64
	render RenderFunc
	logger *log.Logger

	itemH     int
	buffer    int
	threshold int

	keys   KeyMap
	styles Styles

	items  []Item
	width  int
	height int

	cursor int
	offset int

	// single-slot latest-wins scroll queue
	pendingOffset int
	pendingSet    bool

	// materialized window cache; cache[i] holds the itemH rows of item
	// window.Start+i
	window Range
	cache  [][]string

	selection map[string]struct{}

	destroyed bool
}

// New creates a windowed list around the given render callback. A nil
// callback renders every item as a placeholder rather than panicking.
func New(render RenderFunc, opts ...Option) Model {
	m := Model{
		id:        nextID(),
		render:    render,
		itemH:     defaultItemHeight,
		buffer:    defaultBuffer,
		threshold: -1,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		selection: map[string]struct{}{},
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.threshold < 0 {
		m.threshold = m.itemH
	}

	return m
}

// Count returns the number of items in the backing list.
func (m Model) Count() int { return len(m.items) }

// Items returns the backing list.
func (m Model) Items() []Item { return m.items }

// Cursor returns the current cursor index, 0 for an empty list.
func (m Model) Cursor() int { return m.cursor }

// CursorItem returns the item under the cursor, or nil for an empty list.
func (m Model) CursorItem() Item {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor]
}

// Offset returns the applied scroll offset in rows.
func (m Model) Offset() int { return m.offset }

// Window returns the currently materialized index range.
func (m Model) Window() Range { return m.window }

// TotalHeight returns the logical content height in rows: every item
// occupies exactly the configured item height.
func (m Model) TotalHeight() int { return len(m.items) * m.itemH }

// ItemHeight returns the fixed rows per item.
func (m Model) ItemHeight() int { return m.itemH }

// KeyMap returns the active navigation bindings, for help views.
func (m Model) KeyMap() KeyMap { return m.keys }

// Update handles navigation keys, wheel scrolling and the component's own
// scroll-apply messages. A destroyed model ignores everything.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.destroyed {
		return m, nil
	}

	switch msg := msg.(type) {
	case applyScrollMsg:
		if msg.id != m.id || !m.pendingSet {
			return m, nil
		}
		m.pendingSet = false
		m.offset = clampOffset(m.pendingOffset, m.TotalHeight(), m.height)
		return m, m.materialize(false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			return m, m.SetCursor(m.cursor - 1)
		case key.Matches(msg, m.keys.Down):
			return m, m.SetCursor(m.cursor + 1)
		case key.Matches(msg, m.keys.PageUp):
			return m, m.SetCursor(m.cursor - m.pageSize())
		case key.Matches(msg, m.keys.PageDown):
			return m, m.SetCursor(m.cursor + m.pageSize())
		case key.Matches(msg, m.keys.Home):
			return m, m.SetCursor(0)
		case key.Matches(msg, m.keys.End):
			return m, m.SetCursor(len(m.items) - 1)
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.scrollBy(-wheelScrollRows)
		case tea.MouseButtonWheelDown:
			return m, m.scrollBy(wheelScrollRows)
		}
	}

	return m, nil
}

// SetSize resizes the viewport and forces a full re-render: the visible
// range and buffer both depend on viewport height.
func (m *Model) SetSize(width, height int) tea.Cmd {
	if m.destroyed {
		return nil
	}

	m.width = width
	m.height = height
	m.offset = clampOffset(m.offset, m.TotalHeight(), m.height)

	return m.materialize(true)
}

// SetItems replaces the backing list wholesale. A scroll offset beyond
// the new total height resets to the top rather than clamping to the
// bottom.
func (m *Model) SetItems(items []Item) tea.Cmd {
	if m.destroyed {
		return nil
	}

	m.items = items
	if m.offset > m.TotalHeight() {
		m.offset = 0
	}
	m.offset = clampOffset(m.offset, m.TotalHeight(), m.height)
	m.clampCursor()

	return m.materialize(true)
}

// PrependItem inserts an item at the head of the list.
func (m *Model) PrependItem(item Item) tea.Cmd { return m.InsertItem(0, item) }

// AppendItem inserts an item at the tail of the list.
func (m *Model) AppendItem(item Item) tea.Cmd { return m.InsertItem(len(m.items), item) }

// InsertItem inserts an item at index, clamped into [0, len].
func (m *Model) InsertItem(index int, item Item) tea.Cmd {
	if m.destroyed {
		return nil
	}

	if index < 0 {
		index = 0
	}
	if index > len(m.items) {
		index = len(m.items)
	}

	m.items = slices.Insert(m.items, index, item)
	m.offset = clampOffset(m.offset, m.TotalHeight(), m.height)

	return m.materialize(true)
}

// RemoveItem deletes the item at index. An out-of-range index is a no-op:
// no state changes, nothing is emitted.
func (m *Model) RemoveItem(index int) tea.Cmd {
	if m.destroyed || index < 0 || index >= len(m.items) {
		return nil
	}

	m.items = slices.Delete(m.items, index, index+1)
	m.offset = clampOffset(m.offset, m.TotalHeight(), m.height)
	m.clampCursor()

	return m.materialize(true)
}

// UpdateItem replaces the item at index in place. An out-of-range index
// is a no-op. Only an index inside the materialized window costs a
// render; off-window updates just swap the backing item.
func (m *Model) UpdateItem(index int, item Item) tea.Cmd {
	if m.destroyed || index < 0 || index >= len(m.items) {
		return nil
	}

	m.items[index] = item
	if !m.window.Contains(index) {
		return nil
	}

	return m.materializeOne(index)
}

// ScrollToIndex aligns the item at index with the top of the viewport,
// clamped to the scrollable extent. Any pending coalesced scroll is
// cancelled and the window rebuilds immediately. Empty lists no-op.
func (m *Model) ScrollToIndex(index int) tea.Cmd {
	if m.destroyed || len(m.items) == 0 {
		return nil
	}

	if index < 0 {
		index = 0
	}
	if index >= len(m.items) {
		index = len(m.items) - 1
	}

	m.pendingSet = false
	m.cursor = index
	m.offset = clampOffset(index*m.itemH, m.TotalHeight(), m.height)

	return m.materialize(true)
}

// SetCursor moves the cursor to index, clamped, scrolling just enough to
// keep it in view.
func (m *Model) SetCursor(index int) tea.Cmd {
	if m.destroyed || len(m.items) == 0 {
		return nil
	}

	if index < 0 {
		index = 0
	}
	if index >= len(m.items) {
		index = len(m.items) - 1
	}
	m.cursor = index

	if target := m.cursorOffset(); target != m.offset {
		return m.queueScroll(target)
	}
	return nil
}

// Destroy tears the component down: items, window cache, selection and
// the pending scroll slot are cleared, and all subsequent messages and
// operations are ignored.
func (m *Model) Destroy() {
	m.destroyed = true
	m.items = nil
	m.cache = nil
	m.window = Range{}
	m.selection = map[string]struct{}{}
	m.pendingSet = false
	m.offset = 0
	m.cursor = 0
}

// scrollBy queues a relative scroll of the viewport without moving the
// cursor. Steps arriving before the pending target applies accumulate on
// top of it.
func (m *Model) scrollBy(rows int) tea.Cmd {
	if len(m.items) == 0 {
		return nil
	}

	base := m.offset
	if m.pendingSet {
		base = m.pendingOffset
	}

	target := clampOffset(base+rows, m.TotalHeight(), m.height)
	if target == m.offset && !m.pendingSet {
		return nil
	}

	return m.queueScroll(target)
}

// queueScroll stores a scroll target in the single-slot queue. One apply
// command is in flight at a time; newer targets overwrite the slot and
// the in-flight apply picks up whatever is latest when it lands.
func (m *Model) queueScroll(target int) tea.Cmd {
	m.pendingOffset = target
	if m.pendingSet {
		return nil
	}

	m.pendingSet = true
	id := m.id
	return func() tea.Msg { return applyScrollMsg{id: id} }
}

// cursorOffset returns the offset that keeps the cursor's rows visible
// with minimal movement.
func (m *Model) cursorOffset() int {
	top := m.cursor * m.itemH
	bottom := top + m.itemH

	offset := m.offset
	if top < offset {
		offset = top
	} else if m.height > 0 && bottom > offset+m.height {
		offset = bottom - m.height
	}

	return clampOffset(offset, m.TotalHeight(), m.height)
}

// pageSize returns how many whole items fit in the viewport.
func (m *Model) pageSize() int {
	if m.height <= 0 || m.itemH <= 0 {
		return 1
	}
	size := m.height / m.itemH
	if size < 1 {
		size = 1
	}
	return size
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ToggleSelect flips the selection state of the item at index. The set is
// keyed by item ID, so selection survives the item scrolling out of the
// materialized window. Out-of-range indices no-op.
func (m *Model) ToggleSelect(index int) tea.Cmd {
	if m.destroyed || index < 0 || index >= len(m.items) {
		return nil
	}

	id := m.items[index].ID()
	_, selected := m.selection[id]
	if selected {
		delete(m.selection, id)
	} else {
		m.selection[id] = struct{}{}
	}

	return notify(SelectionMsg{ItemID: id, Selected: !selected, Selection: m.Selected()})
}

// SelectAll marks every item in the backing list selected.
func (m *Model) SelectAll() tea.Cmd {
	if m.destroyed {
		return nil
	}

	for _, item := range m.items {
		m.selection[item.ID()] = struct{}{}
	}

	return notify(SelectionMsg{Selected: true, Selection: m.Selected()})
}

// ClearSelection empties the selection set.
func (m *Model) ClearSelection() tea.Cmd {
	if m.destroyed {
		return nil
	}

	clear(m.selection)

	return notify(SelectionMsg{Selected: false, Selection: []string{}})
}

// Selected returns a sorted snapshot of the selected item IDs.
func (m Model) Selected() []string {
	ids := make([]string, 0, len(m.selection))
	for id := range m.selection {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsSelected reports whether the item with the given ID is selected.
func (m Model) IsSelected(id string) bool {
	_, ok := m.selection[id]
	return ok
}
