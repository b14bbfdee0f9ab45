package tui

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Command is data describing side effects a component wants performed off
// the render goroutine (spec.md §4.6). The zero value is CmdNone.
type Command struct {
	kind  cmdKind
	tasks []Command
	task  func(ctx context.Context) Command
	after time.Duration
	then  func() Command
}

type cmdKind uint8

const (
	cmdNone cmdKind = iota
	cmdBatch
	cmdPerform
	cmdSleep
)

// CmdNone performs no effect.
var CmdNone = Command{kind: cmdNone}

// CmdBatch runs every command in cmds concurrently.
func CmdBatch(cmds ...Command) Command {
	return Command{kind: cmdBatch, tasks: cmds}
}

// CmdPerform runs task on a worker goroutine; task may return a further
// Command (e.g. another Perform to report its result back into a signal
// write) which the executor runs in turn.
func CmdPerform(task func(ctx context.Context) Command) Command {
	return Command{kind: cmdPerform, task: task}
}

// CmdSleep waits d, then runs then, without blocking the render loop.
func CmdSleep(d time.Duration, then func() Command) Command {
	return Command{kind: cmdSleep, after: d, then: then}
}

// commandExecutor runs each Perform/Sleep on its own goroutine in an
// errgroup with no concurrency limit, grounded on
// golang.org/x/sync/errgroup (adopted per SPEC_FULL.md's domain stack in
// place of the teacher's single-goroutine renderChan, since commands here
// can run concurrently and must be cancellable as a group on shutdown).
type commandExecutor struct {
	ctx  context.Context
	g    *errgroup.Group
	wake func()
}

// newCommandExecutor builds an executor that calls wake once a Perform or
// Sleep task finishes, so the render loop wakes even if the task never
// touched a Signal (spec.md §4.6: "on completion, raise render-wake",
// unconditionally).
func newCommandExecutor(ctx context.Context, wake func()) *commandExecutor {
	g, gctx := errgroup.WithContext(ctx)
	return &commandExecutor{ctx: gctx, g: g, wake: wake}
}

// run schedules cmd and its descendants for execution; it never blocks.
func (e *commandExecutor) run(cmd Command) {
	switch cmd.kind {
	case cmdNone:
		return

	case cmdBatch:
		for _, c := range cmd.tasks {
			e.run(c)
		}

	case cmdPerform:
		task := cmd.task
		e.g.Go(func() error {
			next := task(e.ctx)
			e.run(next)
			if e.wake != nil {
				e.wake()
			}
			return nil
		})

	case cmdSleep:
		d, then := cmd.after, cmd.then
		e.g.Go(func() error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-e.ctx.Done():
				return nil
			case <-t.C:
			}
			if then != nil {
				e.run(then())
			}
			if e.wake != nil {
				e.wake()
			}
			return nil
		})
	}
}

// wait blocks until every scheduled command has completed. Runtime.Run does
// not call it: at exit it cancels the executor's context and returns without
// waiting for in-flight commands.
func (e *commandExecutor) wait() error {
	return e.g.Wait()
}
