package vlist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// needsRender reports whether the materialized window still covers the
// visible range with enough slack. Scrolls shorter than the threshold
// ride on the buffer instead of paying for a rebuild.
func (m *Model) needsRender(target Range) bool {
	visible := VisibleRange(m.offset, m.height, m.itemH, 0, len(m.items))
	if visible.Start < m.window.Start || visible.End > m.window.End {
		return true
	}

	moved := target.Start - m.window.Start
	if moved < 0 {
		moved = -moved
	}
	return moved*m.itemH > m.threshold
}

// materialize rebuilds the window cache around the current offset and
// reports the pass. Without force, a window that still covers the view
// is left alone.
func (m *Model) materialize(force bool) tea.Cmd {
	target := VisibleRange(m.offset, m.height, m.itemH, m.buffer, len(m.items))
	if !force && !m.needsRender(target) {
		return nil
	}

	started := time.Now()
	cache := make([][]string, target.Len())
	for i := target.Start; i < target.End; i++ {
		cache[i-target.Start] = m.renderLines(i)
	}
	m.window = target
	m.cache = cache

	return notify(m.renderedMsg(started))
}

// materializeOne re-renders a single item already inside the window.
func (m *Model) materializeOne(index int) tea.Cmd {
	started := time.Now()
	m.cache[index-m.window.Start] = m.renderLines(index)

	return notify(m.renderedMsg(started))
}

func (m *Model) renderedMsg(started time.Time) RenderedMsg {
	visible := VisibleRange(m.offset, m.height, m.itemH, 0, len(m.items))
	return RenderedMsg{
		Start:        m.window.Start,
		End:          m.window.End,
		VisibleItems: visible.Len(),
		TotalItems:   len(m.items),
		RenderTime:   time.Since(started),
	}
}

// renderLines produces exactly itemH rows for one item. A panicking or
// absent render callback yields placeholder rows for that item alone,
// never a dead frame.
func (m *Model) renderLines(index int) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			if m.logger != nil {
				m.logger.Error("item render failed", "index", index, "recover", r)
			}
			lines = m.placeholderLines(index)
		}
	}()

	if m.render == nil {
		return m.placeholderLines(index)
	}

	content := m.render(m.items[index], index, m.itemH, m.contentWidth())
	raw := strings.Split(content, "\n")

	lines = make([]string, m.itemH)
	for i := range lines {
		if i < len(raw) {
			lines[i] = m.clip(raw[i])
		}
	}
	return lines
}

// placeholderLines fills an item's rows when its content cannot be
// produced. The first row carries the notice; the rest stay blank so the
// item keeps its height.
func (m *Model) placeholderLines(index int) []string {
	lines := make([]string, m.itemH)
	lines[0] = m.styles.Placeholder.Render(fmt.Sprintf("⚠ item %d unavailable", index))
	return lines
}

func (m *Model) clip(line string) string {
	if m.width <= 0 {
		return line
	}
	return ansi.Truncate(line, m.contentWidth(), "…")
}

// contentWidth returns the columns available to item content after the
// gutter and scrollbar.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - gutterWidth
	if m.hasScrollbar() {
		w--
	}
	if w < 0 {
		w = 0
	}
	return w
}

func (m Model) hasScrollbar() bool {
	return m.height > 0 && m.TotalHeight() > m.height
}

// View renders the viewport. Rows inside the materialized window come
// from the cache; rows outside it stay blank until the window catches
// up. With no measured height the whole list renders without windowing.
func (m Model) View() string {
	if m.destroyed || m.width <= 0 {
		return ""
	}

	total := m.TotalHeight()
	if total == 0 {
		return ""
	}

	top := m.offset
	bottom := total
	if m.height > 0 {
		bottom = top + m.height
		if bottom > total {
			bottom = total
		}
	}

	scrollbar := m.hasScrollbar()
	contentWidth := m.contentWidth()

	var b strings.Builder
	for row := top; row < bottom; row++ {
		if row > top {
			b.WriteByte('\n')
		}

		index := row / m.itemH
		line := ""
		if m.window.Contains(index) {
			cached := m.cache[index-m.window.Start]
			if n := row % m.itemH; n < len(cached) {
				line = cached[n]
			}
		}

		b.WriteString(m.gutter(index, row%m.itemH == 0))
		b.WriteString(m.pad(line, contentWidth))
		if scrollbar {
			b.WriteString(m.scrollbarCell(row - top))
		}
	}

	// blank rows below a short list keep the component height stable
	if m.height > 0 {
		for row := bottom; row < top+m.height; row++ {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", gutterWidth))
			b.WriteString(m.pad("", contentWidth))
		}
	}

	return b.String()
}

// gutter renders the fixed columns left of the content: a bar spanning
// every row of the cursor item, a mark on the first row of each selected
// item, and a spacer.
func (m Model) gutter(index int, firstRow bool) string {
	bar := " "
	if index == m.cursor && index < len(m.items) {
		bar = m.styles.Cursor.Render("┃")
	}

	mark := " "
	if firstRow && index >= 0 && index < len(m.items) {
		if _, ok := m.selection[m.items[index].ID()]; ok {
			mark = m.styles.Selected.Render("✓")
		}
	}

	return bar + mark + " "
}

// pad right-pads a rendered line to the content width, measured ANSI
// aware so styled lines line up with plain ones.
func (m Model) pad(line string, width int) string {
	if width <= 0 {
		return line
	}
	if gap := width - ansi.StringWidth(line); gap > 0 {
		return line + strings.Repeat(" ", gap)
	}
	return line
}

// scrollbarCell picks the thumb or track cell for a viewport row. Thumb
// size and position scale with the visible fraction of the list.
func (m Model) scrollbarCell(viewportRow int) string {
	total := m.TotalHeight()

	thumbLen := m.height * m.height / total
	if thumbLen < 1 {
		thumbLen = 1
	}

	thumbTop := m.offset * m.height / total
	if m.offset >= MaxOffset(total, m.height) {
		thumbTop = m.height - thumbLen
	}
	if thumbTop < 0 {
		thumbTop = 0
	}

	if viewportRow >= thumbTop && viewportRow < thumbTop+thumbLen {
		return m.styles.Thumb.Render("█")
	}
	return m.styles.Track.Render("░")
}
