package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI. List navigation
// bindings live on the vlist component; these are the app-level actions.
type keyMap struct {
	search    key.Binding
	enter     key.Binding
	back      key.Binding
	toggle    key.Binding
	selectAll key.Binding
	clearSel  key.Binding
	del       key.Binding
	addTo     key.Binding
	create    key.Binding
	rename    key.Binding
	remove    key.Binding
	moveUp    key.Binding
	moveDown  key.Binding
	tab       key.Binding
	refresh   key.Binding
	yes       key.Binding
	no        key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		selectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		clearSel:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "clear selection")),
		del:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		addTo:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "add to playlist")),
		create:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		moveUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		moveDown:  key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		refresh:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.search, k.enter, k.back, k.tab},
		{k.toggle, k.selectAll, k.clearSel},
		{k.del, k.addTo, k.create, k.rename},
		{k.remove, k.moveUp, k.moveDown},
		{k.refresh, k.quit},
	}
}
