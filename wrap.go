package tui

import "strings"

// wrap splits str into lines that each fit within maxCells display columns,
// per spec.md §4.1: hard breaks at explicit newlines, soft greedy breaks at
// grapheme-cluster boundaries within a line, empty input yields one empty
// line, and maxCells == 0 collapses every hard-newline segment to an empty
// line.
func wrap(str string, maxCells int) []string {
	if str == "" {
		return []string{""}
	}

	var lines []string
	for _, segment := range strings.Split(str, "\n") {
		lines = append(lines, wrapSegment(segment, maxCells)...)
	}
	return lines
}

// wrapSegment wraps a single hard-newline-free segment.
func wrapSegment(segment string, maxCells int) []string {
	if maxCells <= 0 {
		return []string{""}
	}
	if segment == "" {
		return []string{""}
	}

	var lines []string
	var b strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, b.String())
		b.Reset()
		lineWidth = 0
	}

	for _, c := range clusters(segment) {
		if lineWidth > 0 && lineWidth+c.width > maxCells {
			flush()
		}
		// A cluster wider than the whole line budget still goes on its own
		// line rather than looping forever; the rasterizer truncates any
		// cluster that would overflow the content width at paint time.
		b.WriteString(c.text)
		lineWidth += c.width
		if lineWidth >= maxCells {
			flush()
		}
	}
	if b.Len() > 0 || len(lines) == 0 {
		lines = append(lines, b.String())
	}
	return lines
}
