package shared

import (
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 45, want: "0:45"},
		{name: "minutes and seconds", seconds: 185, want: "3:05"},
		{name: "over an hour", seconds: 3725, want: "1:02:05"},
		{name: "negative clamps to zero", seconds: -30, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestVisibilityString(t *testing.T) {
	if got := VisibilityString(true); got != "Public" {
		t.Errorf("VisibilityString(true) = %v, want Public", got)
	}
	if got := VisibilityString(false); got != "Private" {
		t.Errorf("VisibilityString(false) = %v, want Private", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]string{"name": "Favorites"}

	t.Run("indented", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if !strings.Contains(string(data), "\n  \"name\"") {
			t.Errorf("expected indented output, got %s", string(data))
		}
	})

	t.Run("compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("MarshalJSON failed: %v", err)
		}
		if string(data) != `{"name":"Favorites"}` {
			t.Errorf("unexpected compact output %s", string(data))
		}
	})
}
