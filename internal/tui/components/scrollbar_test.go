package components

import (
	"strings"
	"testing"
)

func TestRenderScrollbar_NonPositiveHeight(t *testing.T) {
	for _, h := range []int{0, -1} {
		if result := RenderScrollbar(h, 100, 0); result != "" {
			t.Errorf("height %d: expected empty string, got %q", h, result)
		}
	}
}

func TestRenderScrollbar_ContentFits(t *testing.T) {
	tests := []struct {
		name    string
		content int
	}{
		{"shorter", 5},
		{"equal", 10},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(RenderScrollbar(10, tt.content, 0), "\n")
			if len(lines) != 10 {
				t.Fatalf("expected 10 lines, got %d", len(lines))
			}
			for i, line := range lines {
				if line != " " {
					t.Errorf("line %d: expected blank gutter, got %q", i, line)
				}
			}
		})
	}
}

func TestRenderScrollbar_ThumbPosition(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		thumbRow int
	}{
		{"top", 0, 0},
		{"bottom", 90, 9},
		{"negative offset clamps to top", -5, 0},
		{"past the end clamps to bottom", 500, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := strings.Split(RenderScrollbar(10, 100, tt.offset), "\n")
			if len(lines) != 10 {
				t.Fatalf("expected 10 lines, got %d", len(lines))
			}
			for i, line := range lines {
				want := scrollTrack
				if i == tt.thumbRow {
					want = scrollThumb
				}
				if line != want {
					t.Errorf("line %d: expected %q, got %q", i, want, line)
				}
			}
		})
	}
}

func TestRenderScrollbar_ThumbSize(t *testing.T) {
	// 10 view lines over 20 content lines gives a thumb of 5.
	result := RenderScrollbar(10, 20, 0)
	if got := strings.Count(result, scrollThumb); got != 5 {
		t.Errorf("expected thumb size 5, got %d", got)
	}
}
