package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

func TestLoopSchedulerDefersToLoop(t *testing.T) {
	sched := memory.NewManualScheduler()
	loop := NewLoopScheduler(sched)
	defer loop.Close()

	ran := 0
	loop.AfterFunc(time.Second, func() { ran++ })

	sched.Advance(time.Second)
	if ran != 0 {
		t.Fatal("callback must not run on the timer goroutine")
	}

	msg, ok := loop.waitForTask()().(taskMsg)
	if !ok {
		t.Fatal("expected a queued task")
	}
	msg.fn()
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestLoopSchedulerDropsStoppedTask(t *testing.T) {
	sched := memory.NewManualScheduler()
	loop := NewLoopScheduler(sched)
	defer loop.Close()

	ran := false
	task := loop.AfterFunc(time.Second, func() { ran = true })
	sched.Advance(time.Second)

	// Fired and queued, then stopped before the loop ran it.
	task.Stop()
	msg := loop.waitForTask()().(taskMsg)
	msg.fn()
	if ran {
		t.Error("stopped task should not run")
	}
	if task.Stop() {
		t.Error("second Stop should report false")
	}
}

func TestLoopSchedulerEvery(t *testing.T) {
	sched := memory.NewManualScheduler()
	loop := NewLoopScheduler(sched)
	defer loop.Close()

	count := 0
	task := loop.Every(time.Second, func() { count++ })
	sched.Advance(3 * time.Second)
	for range 3 {
		loop.waitForTask()().(taskMsg).fn()
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	task.Stop()
	sched.Advance(3 * time.Second)
	if sched.Pending() != 0 {
		t.Errorf("pending = %d after Stop, want 0", sched.Pending())
	}
}

func TestLoopSchedulerCloseUnblocksWait(t *testing.T) {
	loop := NewLoopScheduler(memory.NewManualScheduler())
	loop.Close()
	loop.Close()

	if msg := loop.waitForTask()(); msg != nil {
		t.Errorf("wait after Close = %v, want nil", msg)
	}
}
