// Package tui provides the Bubble Tea integration for the memory game.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

// taskMsg carries a scheduled callback into the update loop.
type taskMsg struct {
	fn func()
}

// LoopScheduler is a memory.Scheduler whose callbacks run inside the Bubble
// Tea update loop. Timers fire on the inner scheduler; their callbacks are
// queued and handed to Update as taskMsg values by waitForTask.
type LoopScheduler struct {
	inner memory.Scheduler
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoopScheduler wraps inner. A nil inner uses real timers.
func NewLoopScheduler(inner memory.Scheduler) *LoopScheduler {
	if inner == nil {
		inner = memory.TimerScheduler{}
	}
	return &LoopScheduler{
		inner: inner,
		tasks: make(chan func(), 16),
		done:  make(chan struct{}),
	}
}

// AfterFunc queues f for the update loop after d.
func (l *LoopScheduler) AfterFunc(d time.Duration, f func()) memory.Task {
	t := &loopTask{}
	t.inner = l.inner.AfterFunc(d, func() { l.post(t, f) })
	return t
}

// Every queues f for the update loop every d until stopped.
func (l *LoopScheduler) Every(d time.Duration, f func()) memory.Task {
	t := &loopTask{}
	t.inner = l.inner.Every(d, func() { l.post(t, f) })
	return t
}

// post hands f to the loop. A task stopped after its timer fired but
// before the loop picked it up is dropped when it runs.
func (l *LoopScheduler) post(t *loopTask, f func()) {
	wrapped := func() {
		if !t.stopped.Load() {
			f()
		}
	}
	select {
	case l.tasks <- wrapped:
	case <-l.done:
	}
}

// Close releases goroutines blocked on the scheduler. Safe to call twice.
func (l *LoopScheduler) Close() {
	l.once.Do(func() { close(l.done) })
}

// waitForTask returns a command that blocks until the next queued callback.
// Update must issue it again after each taskMsg.
func (l *LoopScheduler) waitForTask() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-l.tasks:
			return taskMsg{fn: fn}
		case <-l.done:
			return nil
		}
	}
}

type loopTask struct {
	inner   memory.Task
	stopped atomic.Bool
}

func (t *loopTask) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	return t.inner.Stop()
}
