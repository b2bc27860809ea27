package ui

import (
	"strings"
	"testing"
)

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name       string
		completed  int
		total      int
		width      int
		wantFilled int
		wantBlank  int
		wantSuffix string
	}{
		{"zero of zero does not fault", 0, 0, 50, 0, 50, "0%"},
		// Fill is derived from the floored percent, not the raw counts:
		// 25% of a 50-cell bar is 12 cells.
		{"quarter done", 25, 100, 50, 12, 38, "25%"},
		{"quarter done at full width", 25, 100, 100, 25, 75, "25%"},
		{"all done", 10, 10, 50, 50, 0, "100%"},
		{"none done", 0, 10, 50, 0, 50, "0%"},
		{"floored percent", 1, 3, 50, 16, 34, "33%"},
		{"narrow bar", 1, 2, 10, 5, 5, "50%"},
		{"completed above total clamps", 12, 10, 20, 20, 0, "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderBar(tt.completed, tt.total, tt.width)

			if !strings.HasSuffix(got, tt.wantSuffix) {
				t.Errorf("RenderBar() = %q, want suffix %q", got, tt.wantSuffix)
			}
			if filled := strings.Count(got, filledCell); filled != tt.wantFilled {
				t.Errorf("RenderBar() has %d filled cells, want %d", filled, tt.wantFilled)
			}
			if blank := strings.Count(got, blankCell); blank != tt.wantBlank {
				t.Errorf("RenderBar() has %d blank cells, want %d", blank, tt.wantBlank)
			}
		})
	}

	t.Run("deterministic", func(t *testing.T) {
		first := RenderBar(3, 7, 50)
		for range 5 {
			if got := RenderBar(3, 7, 50); got != first {
				t.Fatalf("RenderBar() not deterministic: %q vs %q", got, first)
			}
		}
	})

	t.Run("non-positive width falls back to default", func(t *testing.T) {
		got := RenderBar(1, 2, 0)
		if cells := strings.Count(got, filledCell) + strings.Count(got, blankCell); cells != 50 {
			t.Errorf("expected 50 cells, got %d", cells)
		}
	})
}
