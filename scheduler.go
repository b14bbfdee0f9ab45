package tui

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Debug mirrors the teacher's env-var-gated debug globals (DebugTiming,
// DebugFullRedraw, TUI_DEBUG_FLUSH) instead of pulling in a logging
// library the teacher never reaches for either.
var Debug = struct {
	Timing     bool
	FullRedraw bool
}{
	Timing:     os.Getenv("TUI_DEBUG_TIMING") != "",
	FullRedraw: os.Getenv("TUI_DEBUG_FULLREDRAW") != "",
}

// Stats reports cumulative runtime counters, mirroring app.go/screen.go's
// GetFlushStats/GetTimings accessors.
type Stats struct {
	Frames      uint64
	LastRender  time.Duration
	LastFlush   time.Duration
	ResizeCount uint64
}

// Options configures a Runtime via a fluent builder, matching the
// teacher's App.Ref/App.Height/App.ClearOnExit chain style.
type Options struct {
	mode   RenderMode
	height int // inline mode only; 0 means "auto from content"
	fps    int
	out    *os.File
	in     *os.File
}

// NewOptions returns a builder defaulting to fullscreen mode at 60 FPS.
func NewOptions() *Options {
	return &Options{mode: ModeFullscreen, fps: 60, out: os.Stdout, in: os.Stdin}
}

// Inline switches to inline rendering, exactly height rows tall (0: size to
// content).
func (o *Options) Inline(height int) *Options { o.mode = ModeInline; o.height = height; return o }

// Fullscreen switches to alternate-screen rendering (the default).
func (o *Options) Fullscreen() *Options { o.mode = ModeFullscreen; return o }

// FPS caps the render rate; 0 disables the cap (render on every wake).
func (o *Options) FPS(n int) *Options { o.fps = n; return o }

// Streams overrides the output/input files (mainly for tests).
func (o *Options) Streams(out, in *os.File) *Options { o.out = out; o.in = in; return o }

// Runtime drives one running application: the component tree, its hook
// state, the terminal driver, and the command executor, grounded on the
// teacher's app.go App.run/render/handleResize/handleRenderRequests loop,
// generalized to call a user Component each frame instead of a fixed
// template.
type Runtime struct {
	opts *Options
	root Component
	hook *Hooks

	term *terminal
	exec *commandExecutor

	renderWake chan struct{}
	effects    chan func()

	stats Stats

	exitOnce sync.Once
	exitErr  error
	done     chan struct{}

	running int32

	focus *FocusManager

	staticEmitted map[*staticIdentity]int

	inputHandlers   map[*Hooks]*func(Key)
	inputHandlersMu sync.Mutex
}

// NewRuntime constructs a Runtime for root, unstarted.
func NewRuntime(root Component, opts *Options) *Runtime {
	if opts == nil {
		opts = NewOptions()
	}
	rt := &Runtime{
		opts:          opts,
		root:          root,
		renderWake:    make(chan struct{}, 1),
		effects:       make(chan func(), 64),
		done:          make(chan struct{}),
		focus:         newFocusManager(),
		staticEmitted: make(map[*staticIdentity]int),
		inputHandlers: make(map[*Hooks]*func(Key)),
	}
	rt.hook = newHooks(rt)
	return rt
}

// requestRender wakes the render loop; coalesces bursts of signal writes
// into a single extra frame, matching app.go's buffered renderChan.
func (rt *Runtime) requestRender() {
	select {
	case rt.renderWake <- struct{}{}:
	default:
	}
}

func (rt *Runtime) deferEffect(fn func()) {
	select {
	case rt.effects <- fn:
	default:
		// Effect queue backpressure: run inline rather than drop it.
		fn()
	}
}

func (rt *Runtime) dispatch(cmd Command) {
	if rt.exec != nil {
		rt.exec.run(cmd)
	}
}

func (rt *Runtime) requestExit(err error) {
	rt.exitOnce.Do(func() {
		rt.exitErr = err
		close(rt.done)
	})
}

func (rt *Runtime) registerInputHandler(h *Hooks, fp *func(Key)) {
	rt.inputHandlersMu.Lock()
	rt.inputHandlers[h] = fp
	rt.inputHandlersMu.Unlock()
}

func (rt *Runtime) dispatchKey(k Key) {
	rt.inputHandlersMu.Lock()
	handlers := make([]*func(Key), 0, len(rt.inputHandlers))
	for _, fp := range rt.inputHandlers {
		handlers = append(handlers, fp)
	}
	rt.inputHandlersMu.Unlock()

	if k.Name == KeyTab {
		rt.focus.Next()
		rt.requestRender()
		return
	}
	if k.Name == KeyBackTab {
		rt.focus.Prev()
		rt.requestRender()
		return
	}

	for _, fp := range handlers {
		if *fp != nil {
			(*fp)(k)
		}
	}
}

// Run starts the application and blocks until a component calls
// AppHandle.Exit/ExitWithError, ctx is cancelled, or the terminal driver
// fails unrecoverably.
func (rt *Runtime) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&rt.running, 0, 1) {
		return ErrAlreadyRunning
	}
	defer atomic.StoreInt32(&rt.running, 0)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t, err := newTerminal(rt.opts.out, rt.opts.in, rt.opts.mode)
	if err != nil {
		return err
	}
	rt.term = t
	rt.exec = newCommandExecutor(ctx, rt.requestRender)

	if !t.isTTY {
		return rt.runNonTTY()
	}

	if err := t.enterRaw(); err != nil {
		return err
	}
	defer t.close()
	t.enterScreen()
	t.watchResize()

	defer func() {
		if r := recover(); r != nil {
			t.close()
			panic(r)
		}
	}()

	go rt.readInput(ctx, t)

	w, h, err := t.size()
	if err != nil {
		return err
	}
	if rt.opts.mode == ModeInline && rt.opts.height > 0 {
		h = rt.opts.height
	}

	rt.requestRender()
	ticker := rt.frameTicker()
	defer ticker.Stop()
	var interval time.Duration
	if rt.opts.fps > 0 {
		interval = time.Second / time.Duration(rt.opts.fps)
	}
	var lastPaint time.Time
	pending := false

	for {
		select {
		case <-ctx.Done():
			rt.requestExit(ctx.Err())
		case <-rt.done:
			return rt.exitErr

		case <-t.resizeCh:
			rt.stats.ResizeCount++
			nw, nh, err := t.size()
			if err == nil {
				if nw < w {
					// spec.md:136: a width decrease must clear the screen
					// before the next paint, so a narrower rewrap can't
					// leave stale wide-frame cells behind that no diffed
					// row would otherwise overwrite.
					t.forceClear()
				}
				w, h = nw, nh
				if rt.opts.mode == ModeInline && rt.opts.height > 0 {
					h = rt.opts.height
				}
			}
			rt.requestRender()

		case fn := <-rt.effects:
			fn()

		case <-rt.renderWake:
			pending = true
			if time.Since(lastPaint) >= interval {
				rt.renderFrame(w, h)
				lastPaint, pending = time.Now(), false
			}

		case <-ticker.C:
			select {
			case <-rt.renderWake:
				pending = true
			default:
			}
			if pending {
				rt.renderFrame(w, h)
				lastPaint, pending = time.Now(), false
			}
		}
	}
}

func (rt *Runtime) frameTicker() *time.Ticker {
	fps := rt.opts.fps
	if fps <= 0 {
		fps = 1000
	}
	return time.NewTicker(time.Second / time.Duration(fps))
}

func (rt *Runtime) readInput(ctx context.Context, t *terminal) {
	if t.in == nil {
		return
	}
	dec := newDecoder(t.in)
	for {
		ev, err := dec.next()
		if err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		if ev.Key != nil {
			if ev.Key.Ctrl && ev.Key.Rune == 'c' {
				rt.requestExit(nil)
				return
			}
			rt.dispatchKey(*ev.Key)
		}
	}
}

func (rt *Runtime) renderFrame(w, h int) {
	start := time.Now()

	rt.hook.beginFrame()
	var el Element
	trackDependency(rt.hook, func() {
		el = rt.root(rt.hook)
	})
	rt.hook.endFrame()

	renderDur := time.Since(start)

	var tree *LayoutTree
	if rt.opts.mode == ModeInline && rt.opts.height == 0 {
		tree = SolveAuto(el, w)
		_, _, _, autoH := tree.Rect(0).Snapped()
		if autoH > 0 {
			h = autoH
		}
	} else {
		tree = Solve(el, w, h)
	}
	grid := NewGrid(w, h)
	Rasterize(tree, grid, rt.emitStatic)

	flushStart := time.Now()
	rt.term.flush(grid)
	flushDur := time.Since(flushStart)

	rt.stats.Frames++
	rt.stats.LastRender = renderDur
	rt.stats.LastFlush = flushDur
}

func (rt *Runtime) emitStatic(key *staticIdentity, item Element, index int) {
	emitted := rt.staticEmitted[key]
	if index < emitted {
		return
	}
	rt.staticEmitted[key] = index + 1

	var w int
	if rt.term.front != nil {
		w = rt.term.front.W
	}
	if w == 0 {
		w, _, _ = rt.term.size()
	}
	if w == 0 {
		w = 80
	}

	tree := Solve(item, w, 1000000)
	_, _, _, rectH := tree.Rect(0).Snapped()
	if rectH < 1 {
		rectH = 1
	}
	g := NewGrid(w, rectH)
	Rasterize(tree, g, func(*staticIdentity, Element, int) {})
	rt.term.writePersistent(gridToText(g))
}

// gridToText flattens a grid to plain lines, used to hand Static items to
// the terminal driver's persistent-output path.
func gridToText(g *Grid) string {
	var b []byte
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.Get(x, y)
			if c.Width == 0 {
				continue
			}
			if c.Rune == 0 {
				b = append(b, ' ')
			} else {
				b = append(b, []byte(string(c.Rune))...)
			}
		}
		if y < g.H-1 {
			b = append(b, '\n')
		}
	}
	return string(b)
}

// Stats returns a snapshot of cumulative runtime counters.
func (rt *Runtime) Stats() Stats { return rt.stats }

// runNonTTY renders exactly one frame as plain text and returns, per
// spec.md §5's non-interactive fallback.
func (rt *Runtime) runNonTTY() error {
	w := 80
	rt.hook.beginFrame()
	var el Element
	trackDependency(rt.hook, func() { el = rt.root(rt.hook) })
	rt.hook.endFrame()

	tree := SolveAuto(el, w)
	_, _, _, h := tree.Rect(0).Snapped()
	if h < 1 {
		h = 1
	}
	grid := NewGrid(w, h)
	Rasterize(tree, grid, rt.emitStatic)
	rt.term.flush(grid)
	return nil
}
