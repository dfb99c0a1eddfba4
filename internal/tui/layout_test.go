package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		composerHeight int
		viewportWidth  int
		viewportHeight int
	}{
		{name: "advice", width: 80, height: 40, composerHeight: adviceComposerHeight, viewportWidth: 76, viewportHeight: 23},
		{name: "search", width: 200, height: 40, composerHeight: searchComposerHeight, viewportWidth: 196, viewportHeight: 25},
		{name: "tiny", width: 20, height: 10, composerHeight: adviceComposerHeight, viewportWidth: 40, viewportHeight: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height, tc.composerHeight)
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
			if layout.composerHeight != tc.composerHeight {
				t.Fatalf("composer height mismatch: got %d want %d", layout.composerHeight, tc.composerHeight)
			}
		})
	}
}

func TestIndentMultiline(t *testing.T) {
	got := indentMultiline("a\n\nb", "  ")
	if got != "  a\n\n  b" {
		t.Fatalf("indent = %q", got)
	}
}
