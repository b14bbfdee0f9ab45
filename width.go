package tui

import "github.com/rivo/uniseg"

// width returns the sum of per-grapheme-cluster display widths in s. This is
// the sole width oracle for the layout engine and the rasterizer (spec.md
// §4.1); grounded on github.com/rivo/uniseg, which already implements the
// extended-grapheme-cluster segmentation and East-Asian-width/emoji rules
// spec.md mandates, rather than a rune-width approximation like the
// teacher's mattn/go-runewidth dependency.
func width(s string) int {
	total := 0
	state := -1
	for len(s) > 0 {
		var w int
		_, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		total += w
	}
	return total
}

// cluster is one grapheme cluster together with its display width.
type cluster struct {
	text  string
	width int
}

// clusters segments s into grapheme clusters, each annotated with its
// display width, using the same segmentation as width(). Used by wrap() and
// the grid/rasterizer text writers.
func clusters(s string) []cluster {
	out := make([]cluster, 0, len(s))
	state := -1
	for len(s) > 0 {
		var c string
		var w int
		c, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster{text: c, width: w})
	}
	return out
}
