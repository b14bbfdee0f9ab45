package tui

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/cancelreader"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RenderMode selects how the driver occupies the terminal.
type RenderMode uint8

const (
	// ModeFullscreen uses the alternate screen buffer and owns the whole
	// viewport (spec.md §5 "fullscreen mode").
	ModeFullscreen RenderMode = iota
	// ModeInline renders in place, below the cursor's starting position,
	// scrolling normal terminal history above it (spec.md §5 "inline mode").
	ModeInline
)

// CursorShape selects the terminal cursor glyph via DECSCUSR, grounded on
// the teacher's screen.go CursorShape type.
type CursorShape int

const (
	CursorBlock CursorShape = iota
	CursorUnderline
	CursorBar
)

// terminal owns raw-mode lifecycle, resize detection, and diffed output for
// one real or pseudo TTY. Grounded end-to-end on the teacher's screen.go:
// origTermios save/restore via golang.org/x/sys/unix, SIGWINCH handling,
// alternate screen and cursor escape sequences, and the inline-mode
// linesUsed bookkeeping.
type terminal struct {
	out io.Writer
	in  cancelreader.CancelReader

	isTTY bool
	mode  RenderMode

	fd         int
	origTerm   *unix.Termios
	rawEntered bool
	altEntered bool

	mu         sync.Mutex
	front      *Grid
	linesUsed  int // inline mode: rows already occupied below the start cursor
	profile    Profile

	resizeCh chan struct{}
	sigwinch chan os.Signal
}

func newTerminal(out *os.File, in *os.File, mode RenderMode) (*terminal, error) {
	isTTY := term.IsTerminal(int(out.Fd()))
	t := &terminal{
		out:      out,
		isTTY:    isTTY,
		mode:     mode,
		fd:       int(out.Fd()),
		resizeCh: make(chan struct{}, 1),
		profile:  DetectProfile(out),
	}
	if !isTTY {
		return t, nil
	}

	cr, err := cancelreader.NewReader(in)
	if err != nil {
		return nil, fmt.Errorf("tui: opening input reader: %w", err)
	}
	t.in = cr
	return t, nil
}

// size reports the current terminal dimensions via TIOCGWINSZ, grounded on
// screen.go's getTerminalSize.
func (t *terminal) size() (w, h int, err error) {
	ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("tui: reading terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

// enterRaw puts the terminal into raw mode, disabling canonical processing
// and echo, mirroring screen.go's EnterRawMode termios twiddling.
func (t *terminal) enterRaw() error {
	if !t.isTTY || t.rawEntered {
		return nil
	}
	orig, err := unix.IoctlGetTermios(t.fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("tui: reading termios: %w", err)
	}
	t.origTerm = orig

	raw := *orig
	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("tui: entering raw mode: %w", err)
	}
	t.rawEntered = true
	return nil
}

func (t *terminal) exitRaw() error {
	if !t.rawEntered {
		return nil
	}
	err := unix.IoctlSetTermios(t.fd, unix.TCSETS, t.origTerm)
	t.rawEntered = false
	if err != nil {
		return fmt.Errorf("tui: restoring termios: %w", err)
	}
	return nil
}

// enterScreen switches the display mode on: alt-screen + hide cursor for
// fullscreen, or just hide-cursor for inline.
func (t *terminal) enterScreen() {
	if !t.isTTY {
		return
	}
	if t.mode == ModeFullscreen {
		io.WriteString(t.out, ansi.SetAltScreenSaveCursor)
		t.altEntered = true
	}
	io.WriteString(t.out, ansi.HideCursor)
}

func (t *terminal) exitScreen() {
	if !t.isTTY {
		return
	}
	io.WriteString(t.out, ansi.ShowCursor)
	if t.altEntered {
		io.WriteString(t.out, ansi.ResetAltScreenSaveCursor)
		t.altEntered = false
	} else if t.mode == ModeInline {
		t.clearInlineRegion()
	}
}

// clearInlineRegion erases the rows the inline renderer has painted so far,
// moving the cursor back to the region's top before giving the terminal
// back, matching screen.go's ExitInlineMode.
func (t *terminal) clearInlineRegion() {
	if t.linesUsed == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\x1b[%dA", t.linesUsed))
	for i := 0; i < t.linesUsed; i++ {
		b.WriteString("\x1b[2K")
		if i < t.linesUsed-1 {
			b.WriteString("\x1b[1B")
		}
	}
	b.WriteString(fmt.Sprintf("\x1b[%dA", t.linesUsed-1))
	io.WriteString(t.out, b.String())
	t.linesUsed = 0
}

// forceClear erases the whole screen and drops the diffed front buffer, so
// the next flush repaints every cell instead of trusting a stale diff.
// Grounded on screen.go's own "\x1b[2J" clear; called on a width decrease
// (spec.md:136: "a width decrease triggers a full-screen clear before the
// next paint") since narrower wrapped content can otherwise leave stale
// wide-frame cells on screen that no diffed row rewrites.
func (t *terminal) forceClear() {
	if !t.isTTY {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	io.WriteString(t.out, "\x1b[2J")
	t.front = nil
}

// watchResize notifies resizeCh on SIGWINCH, grounded on screen.go's
// handleSignals goroutine.
func (t *terminal) watchResize() {
	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, syscall.SIGWINCH)
	go func() {
		for range t.sigwinch {
			select {
			case t.resizeCh <- struct{}{}:
			default:
			}
		}
	}()
}

func (t *terminal) stopWatchingResize() {
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
		close(t.sigwinch)
		t.sigwinch = nil
	}
}

// flush emits g and swaps it in as the new front buffer: in fullscreen mode
// only the rows that differ from the previously flushed frame, in inline
// mode every row (see writeInline),
// grounded on screen.go's Flush/writeCell diffing and buffer.go's
// dirtyRows tracking.
func (t *terminal) flush(g *Grid) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isTTY {
		t.writeFullNonTTY(g)
		return
	}

	var b strings.Builder
	if t.mode == ModeInline {
		t.writeInline(&b, g)
	} else {
		t.writeFullscreen(&b, g)
	}
	io.WriteString(t.out, b.String())
	t.front = g
}

func (t *terminal) writeFullscreen(b *strings.Builder, g *Grid) {
	for y := 0; y < g.H; y++ {
		if !g.DiffRow(t.front, y) {
			continue
		}
		fmt.Fprintf(b, "\x1b[%d;1H", y+1)
		t.writeRow(b, g, y)
		b.WriteString("\x1b[K")
	}
}

// writeInline repaints every used row each frame (simpler and correct,
// matching screen.go's FlushInline full-repaint strategy for the live
// region) and tracks how many terminal rows are currently occupied so
// clearInlineRegion and subsequent frames can reposition the cursor.
func (t *terminal) writeInline(b *strings.Builder, g *Grid) {
	if t.linesUsed > 0 {
		fmt.Fprintf(b, "\x1b[%dA", t.linesUsed)
	}
	for y := 0; y < g.H; y++ {
		b.WriteString("\r\x1b[2K")
		t.writeRow(b, g, y)
		if y < g.H-1 {
			b.WriteString("\r\n")
		}
	}
	t.linesUsed = g.H
}

func (t *terminal) writeRow(b *strings.Builder, g *Grid, y int) {
	var lastFG, lastBG Color
	var lastAttrs Attr
	started := false
	for x := 0; x < g.W; x++ {
		c := g.Get(x, y)
		if c.Width == 0 {
			continue
		}
		if !started || c.Foreground != lastFG || c.Background != lastBG || c.Attrs != lastAttrs {
			b.WriteString(sgrReset)
			b.WriteString(attrsSGR(c.Attrs))
			if p := c.Foreground.sgr(true, t.profile); p != "" {
				b.WriteString("\x1b[" + p + "m")
			}
			if p := c.Background.sgr(false, t.profile); p != "" {
				b.WriteString("\x1b[" + p + "m")
			}
			lastFG, lastBG, lastAttrs = c.Foreground, c.Background, c.Attrs
			started = true
		}
		if c.Rune == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c.Rune)
		}
	}
	if started {
		b.WriteString(sgrReset)
	}
}

const sgrReset = "\x1b[0m"

func attrsSGR(a Attr) string {
	if a == 0 {
		return ""
	}
	var b strings.Builder
	if a.Has(AttrBold) {
		b.WriteString("\x1b[1m")
	}
	if a.Has(AttrDim) {
		b.WriteString("\x1b[2m")
	}
	if a.Has(AttrItalic) {
		b.WriteString("\x1b[3m")
	}
	if a.Has(AttrUnderline) {
		b.WriteString("\x1b[4m")
	}
	if a.Has(AttrInverse) {
		b.WriteString("\x1b[7m")
	}
	if a.Has(AttrStrike) {
		b.WriteString("\x1b[9m")
	}
	return b.String()
}

// writeFullNonTTY emits one plain-text frame with no escape sequences at
// all, for piped/redirected output (spec.md §5 "non-interactive fallback").
func (t *terminal) writeFullNonTTY(g *Grid) {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.Get(x, y)
			if c.Width == 0 {
				continue
			}
			if c.Rune == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(c.Rune)
			}
		}
		b.WriteByte('\n')
	}
	io.WriteString(t.out, b.String())
}

// writePersistent emits s above the live region (scrollback), used for
// Static content and App.Println-style output, grounded on screen.go's
// inline-mode "print above the live region" arithmetic.
func (t *terminal) writePersistent(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isTTY {
		io.WriteString(t.out, s)
		if !strings.HasSuffix(s, "\n") {
			io.WriteString(t.out, "\n")
		}
		return
	}

	var b strings.Builder
	if t.mode == ModeInline && t.linesUsed > 0 {
		fmt.Fprintf(&b, "\x1b[%dA\r", t.linesUsed)
	}
	b.WriteString("\x1b[2K")
	b.WriteString(normalizeCRLF(s))
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\r\n")
	}
	io.WriteString(t.out, b.String())
	if t.mode == ModeInline {
		t.linesUsed = 0 // live region will fully repaint on the next flush
	}
}

// normalizeCRLF rewrites bare "\n" to "\r\n", required while the terminal is
// in raw mode since OPOST (which normally does this translation) is
// disabled (spec.md §5 "CRLF in raw mode").
func normalizeCRLF(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\n", "\r\n")
}

// setCursorShape sends DECSCUSR to change the cursor glyph, grounded on
// screen.go's CursorShape handling.
func (t *terminal) setCursorShape(shape CursorShape) {
	if !t.isTTY {
		return
	}
	var n int
	switch shape {
	case CursorBlock:
		n = 2
	case CursorUnderline:
		n = 4
	case CursorBar:
		n = 6
	}
	fmt.Fprintf(t.out, "\x1b[%d q", n)
}

// setCursorColor sends OSC 12 to recolor the terminal cursor, grounded on
// screen.go's BufferCursorColor; a no-op for non-RGB/unset colors since OSC
// 12 only accepts a hex triple.
func (t *terminal) setCursorColor(c Color) {
	if !t.isTTY || c.Mode != ColorRGB {
		return
	}
	fmt.Fprintf(t.out, "\x1b]12;#%02x%02x%02x\x07", c.R, c.G, c.B)
}

// resetCursorColor restores the terminal's default cursor color via OSC 112.
func (t *terminal) resetCursorColor() {
	if !t.isTTY {
		return
	}
	io.WriteString(t.out, "\x1b]112\x07")
}

// close restores the terminal to its original state; safe to call multiple
// times and from a recover() handler so a panicking render never leaves the
// user's terminal broken.
func (t *terminal) close() {
	t.resetCursorColor()
	t.exitScreen()
	t.exitRaw()
	t.stopWatchingResize()
	if t.in != nil {
		t.in.Cancel()
		t.in.Close()
	}
}
