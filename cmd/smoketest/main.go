// Command smoketest exercises the driver's non-TTY fallback path: a piped
// or redirected stdout has no terminal capabilities, so Runtime.Run must
// render exactly one plain-text frame and return instead of entering the
// interactive event loop.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kfsheep/tui"
)

func root(h *tui.Hooks) tui.Element {
	st := tui.DefaultStyle()
	st.Border = tui.BorderSingle
	st.Padding = tui.Edges{Top: 1, Right: 2, Bottom: 1, Left: 2}
	return tui.Box(st, tui.Text(tui.DefaultStyle(), "smoketest ok"))
}

func main() {
	rt := tui.NewRuntime(root, tui.NewOptions())
	if err := rt.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
