package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastLevel grades a toast for icon and color.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarn
	ToastError
)

const (
	maxToasts     = 4
	toastTTL      = 4 * time.Second
	toastInterval = time.Second
)

// Toast is one transient notification.
type Toast struct {
	Level   ToastLevel
	Message string
	expires time.Time
}

func (t Toast) render() string {
	switch t.Level {
	case ToastError:
		return styles.err.Render("✗ " + t.Message)
	case ToastWarn:
		return styles.warn.Render("! " + t.Message)
	default:
		return styles.ok.Render("✓ " + t.Message)
	}
}

// ToastsModel is a capped queue of toasts pruned on a ticker. At most one
// tick command is in flight; it stops when the queue drains.
type ToastsModel struct {
	toasts  []Toast
	ttl     time.Duration
	tick    time.Duration
	ticking bool
}

func NewToasts() ToastsModel {
	return ToastsModel{ttl: toastTTL, tick: toastInterval}
}

// Push queues a toast, dropping the oldest when the queue is full. The
// returned command starts the prune ticker unless one is already running.
func (t *ToastsModel) Push(level ToastLevel, message string) tea.Cmd {
	t.toasts = append(t.toasts, Toast{
		Level:   level,
		Message: message,
		expires: time.Now().Add(t.ttl),
	})
	if len(t.toasts) > maxToasts {
		t.toasts = t.toasts[len(t.toasts)-maxToasts:]
	}

	if t.ticking {
		return nil
	}
	t.ticking = true
	return t.tickCmd()
}

func (t ToastsModel) tickCmd() tea.Cmd {
	return tea.Tick(t.tick, func(now time.Time) tea.Msg { return toastTickMsg(now) })
}

// Update drops expired toasts on each tick and keeps ticking while any
// remain.
func (t ToastsModel) Update(msg tea.Msg) (ToastsModel, tea.Cmd) {
	tick, ok := msg.(toastTickMsg)
	if !ok {
		return t, nil
	}

	now := time.Time(tick)
	kept := make([]Toast, 0, len(t.toasts))
	for _, toast := range t.toasts {
		if toast.expires.After(now) {
			kept = append(kept, toast)
		}
	}
	t.toasts = kept

	if len(t.toasts) == 0 {
		t.ticking = false
		return t, nil
	}
	return t, t.tickCmd()
}

// View renders the queue right-aligned, one toast per row, oldest first.
func (t ToastsModel) View(width int) string {
	if len(t.toasts) == 0 {
		return ""
	}

	out := ""
	for i, toast := range t.toasts {
		if i > 0 {
			out += "\n"
		}
		out += lipgloss.PlaceHorizontal(width, lipgloss.Right, toast.render())
	}
	return out
}
