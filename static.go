package tui

import "strings"

// RenderToString lays out and rasterizes el at the given width and returns
// the result as a single ANSI-styled string with no cursor-control
// sequences, one line per row (spec.md §6 "Static rendering entry point").
// For anything that wants a snapshot without driving a live terminal; the
// runtime's own non-TTY fallback writes through the terminal driver instead.
func RenderToString(el Element, width int) string {
	return RenderToStringProfile(el, width, ProfileTrueColor)
}

// RenderToStringProfile is RenderToString with an explicit color profile,
// for snapshotting what a lower-capability terminal would see.
func RenderToStringProfile(el Element, width int, profile Profile) string {
	tree := SolveAuto(el, width)
	_, _, _, h := tree.Rect(0).Snapped()
	if h < 1 {
		h = 1
	}
	g := NewGrid(width, h)
	Rasterize(tree, g, func(*staticIdentity, Element, int) {})

	var out strings.Builder
	for y := 0; y < g.H; y++ {
		writeStyledRow(&out, g, y, profile)
		if y < g.H-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func writeStyledRow(out *strings.Builder, g *Grid, y int, profile Profile) {
	var lastFG, lastBG Color
	var lastAttrs Attr
	started := false
	for x := 0; x < g.W; x++ {
		c := g.Get(x, y)
		if c.Width == 0 {
			continue
		}
		if !started || c.Foreground != lastFG || c.Background != lastBG || c.Attrs != lastAttrs {
			if started {
				out.WriteString(sgrReset)
			}
			out.WriteString(attrsSGR(c.Attrs))
			if p := c.Foreground.sgr(true, profile); p != "" {
				out.WriteString("\x1b[" + p + "m")
			}
			if p := c.Background.sgr(false, profile); p != "" {
				out.WriteString("\x1b[" + p + "m")
			}
			lastFG, lastBG, lastAttrs = c.Foreground, c.Background, c.Attrs
			started = true
		}
		if c.Rune == 0 {
			out.WriteByte(' ')
		} else {
			out.WriteRune(c.Rune)
		}
	}
	if started {
		out.WriteString(sgrReset)
	}
}

// Println writes a line of persistent, scrollback-bound output above the live
// region, grounded on screen.go's inline "print above" path. The line is
// written at once through the terminal driver; it is not queued for the next
// frame. Before Run has created the terminal driver it does nothing.
func (rt *Runtime) Println(s string) {
	if rt.term == nil {
		return
	}
	rt.term.writePersistent(s)
}
