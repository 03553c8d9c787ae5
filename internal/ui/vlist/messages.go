package vlist

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderedMsg is emitted after every materialization pass. Programs can
// use it to observe render cost and the materialized window without
// reaching into the model.
type RenderedMsg struct {
	Start        int
	End          int
	VisibleItems int
	TotalItems   int
	RenderTime   time.Duration
}

// SelectionMsg is emitted after every selection mutation with a sorted
// snapshot of the full set. ItemID is empty for select-all and clear-all.
type SelectionMsg struct {
	ItemID    string
	Selected  bool
	Selection []string
}

// applyScrollMsg commits the pending scroll target of one list instance.
type applyScrollMsg struct {
	id int64
}

func notify(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
