package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestToasts(t *testing.T) {
	t.Run("Push Caps The Queue", func(t *testing.T) {
		toasts := NewToasts()

		if cmd := toasts.Push(ToastInfo, "toast 0"); cmd == nil {
			t.Errorf("first push did not start the ticker")
		}
		for i := 1; i < 6; i++ {
			if cmd := toasts.Push(ToastInfo, fmt.Sprintf("toast %d", i)); cmd != nil {
				t.Errorf("push %d started a second ticker", i)
			}
		}

		if got := len(toasts.toasts); got != maxToasts {
			t.Fatalf("queue holds %d toasts, want %d", got, maxToasts)
		}
		if got := toasts.toasts[0].Message; got != "toast 2" {
			t.Errorf("oldest toast = %q, want %q", got, "toast 2")
		}
	})

	t.Run("Ticks Prune Expired Toasts", func(t *testing.T) {
		toasts := NewToasts()
		toasts.Push(ToastError, "backend down")

		toasts, cmd := toasts.Update(toastTickMsg(time.Now()))
		if got := len(toasts.toasts); got != 1 {
			t.Fatalf("fresh toast pruned, queue holds %d", got)
		}
		if cmd == nil {
			t.Errorf("ticker stopped while a toast remained")
		}

		toasts, cmd = toasts.Update(toastTickMsg(time.Now().Add(toastTTL + time.Second)))
		if got := len(toasts.toasts); got != 0 {
			t.Fatalf("expired toast kept, queue holds %d", got)
		}
		if cmd != nil {
			t.Errorf("ticker kept running on an empty queue")
		}

		if cmd := toasts.Push(ToastInfo, "again"); cmd == nil {
			t.Errorf("push after draining did not restart the ticker")
		}
	})

	t.Run("View Aligns Right", func(t *testing.T) {
		toasts := NewToasts()
		toasts.Push(ToastError, "backend down")
		toasts.Push(ToastInfo, "saved")

		lines := strings.Split(toasts.View(40), "\n")
		if len(lines) != 2 {
			t.Fatalf("view has %d lines, want 2", len(lines))
		}
		for i, line := range lines {
			if got := ansi.StringWidth(line); got != 40 {
				t.Errorf("line %d width = %d, want 40", i, got)
			}
		}
		if !strings.HasSuffix(lines[0], "✗ backend down") {
			t.Errorf("line 0 = %q, want the error toast at the right edge", lines[0])
		}
		if !strings.HasSuffix(lines[1], "✓ saved") {
			t.Errorf("line 1 = %q, want the info toast at the right edge", lines[1])
		}
	})

	t.Run("Empty Queue Renders Nothing", func(t *testing.T) {
		toasts := NewToasts()
		if got := toasts.View(40); got != "" {
			t.Errorf("View() = %q, want empty", got)
		}
	})
}
