package vlist

import "testing"

func TestVisibleRange(t *testing.T) {
	t.Run("Computes Windows", func(t *testing.T) {
		tests := []struct {
			name      string
			offset    int
			viewportH int
			itemH     int
			buffer    int
			count     int
			want      Range
		}{
			{"Top Of List", 0, 30, 3, 2, 100, Range{0, 12}},
			{"Mid List", 150, 30, 3, 2, 100, Range{48, 62}},
			{"Bottom Of List", 270, 30, 3, 2, 100, Range{88, 100}},
			{"Partial Item Rows", 1, 4, 3, 0, 10, Range{0, 2}},
			{"No Buffer", 0, 30, 3, 0, 100, Range{0, 10}},
			{"Empty List", 0, 30, 3, 2, 0, Range{}},
			{"Zero Item Height", 0, 30, 0, 2, 100, Range{}},
			{"Unmeasured Viewport", 0, 0, 3, 2, 10, Range{0, 10}},
			{"List Shorter Than Viewport", 0, 30, 3, 2, 4, Range{0, 4}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := VisibleRange(tt.offset, tt.viewportH, tt.itemH, tt.buffer, tt.count)
				if got != tt.want {
					t.Errorf("expected %+v, got %+v", tt.want, got)
				}
			})
		}
	})

	t.Run("Window Is Bounded", func(t *testing.T) {
		const (
			viewportH = 30
			itemH     = 3
			buffer    = 5
			count     = 10000
		)
		bound := viewportH/itemH + 2*buffer + 2

		for offset := 0; offset <= MaxOffset(count*itemH, viewportH); offset += 7 {
			r := VisibleRange(offset, viewportH, itemH, buffer, count)
			if r.Len() > bound {
				t.Fatalf("window %+v at offset %d exceeds bound %d", r, offset, bound)
			}
		}
	})

	t.Run("Window Covers The Viewport", func(t *testing.T) {
		const (
			viewportH = 30
			itemH     = 3
			count     = 10000
		)

		for offset := 0; offset <= MaxOffset(count*itemH, viewportH); offset += 11 {
			r := VisibleRange(offset, viewportH, itemH, 0, count)
			if first := offset / itemH; !r.Contains(first) {
				t.Fatalf("window %+v at offset %d misses first visible item %d", r, offset, first)
			}
			if last := (offset + viewportH - 1) / itemH; !r.Contains(last) {
				t.Fatalf("window %+v at offset %d misses last visible item %d", r, offset, last)
			}
		}
	})

	t.Run("Halving The Viewport Halves The Window", func(t *testing.T) {
		full := VisibleRange(300, 60, 3, 0, 1000)
		half := VisibleRange(300, 30, 3, 0, 1000)

		if full.Len() != 2*half.Len() {
			t.Errorf("expected window of %d to halve to %d, got %d", full.Len(), full.Len()/2, half.Len())
		}
	})

	t.Run("Recompute Is Stable", func(t *testing.T) {
		first := VisibleRange(150, 30, 3, 5, 100)
		second := VisibleRange(150, 30, 3, 5, 100)

		if first != second {
			t.Errorf("expected identical windows, got %+v then %+v", first, second)
		}
	})
}

func TestMaxOffset(t *testing.T) {
	tests := []struct {
		name      string
		totalH    int
		viewportH int
		want      int
	}{
		{"Long Content Scrolls", 300, 30, 270},
		{"Exact Fit Pins To Top", 30, 30, 0},
		{"Short Content Pins To Top", 12, 30, 0},
		{"Empty Content", 0, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxOffset(tt.totalH, tt.viewportH); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestClampOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   int
	}{
		{"Negative Clamps To Zero", -10, 0},
		{"In Range Passes Through", 100, 100},
		{"Beyond End Clamps To Max", 5000, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampOffset(tt.offset, 300, 30); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
