package vlist

import "github.com/charmbracelet/lipgloss"

// Styles control the component's own chrome. Item content arrives already
// styled from the render callback and is left alone.
type Styles struct {
	Cursor      lipgloss.Style // gutter bar on the cursor item's rows
	Selected    lipgloss.Style // gutter check mark on selected items
	Placeholder lipgloss.Style // first line of a failed item
	Thumb       lipgloss.Style // scrollbar thumb
	Track       lipgloss.Style // scrollbar track
}

// DefaultStyles returns the component's stock palette.
func DefaultStyles() Styles {
	return Styles{
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true),
		Thumb:       lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		Track:       lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C")),
	}
}
