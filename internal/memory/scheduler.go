package memory

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled callback.
// Stop reports whether the call prevented any further runs.
type Task interface {
	Stop() bool
}

// Scheduler runs deferred and repeating callbacks.
// The session and clock never touch timers directly, so the platform can
// decide on which goroutine callbacks run and tests can drive virtual time.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
	Every(d time.Duration, f func()) Task
}

// TimerScheduler schedules callbacks on real time.Timer / time.Ticker values.
// Callbacks run on their own goroutines.
type TimerScheduler struct{}

// AfterFunc runs f once after d.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Every runs f every d until the task is stopped.
func (TimerScheduler) Every(d time.Duration, f func()) Task {
	t := &tickerTask{done: make(chan struct{})}
	tk := time.NewTicker(d)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				f()
			}
		}
	}()
	return t
}

type tickerTask struct {
	once sync.Once
	done chan struct{}
}

func (t *tickerTask) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.done)
		stopped = true
	})
	return stopped
}

// ManualScheduler is a Scheduler driven by virtual time.
// Nothing runs until Advance is called; callbacks run on the caller's goroutine
// in due-time order.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	at      time.Duration
	every   time.Duration
	seq     uint64
	f       func()
	stopped bool
}

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc schedules f to run once, d after the current virtual time.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Task {
	return s.add(d, 0, f)
}

// Every schedules f to run every d of virtual time.
func (s *ManualScheduler) Every(d time.Duration, f func()) Task {
	if d <= 0 {
		panic("memory: non-positive interval for Every")
	}
	return s.add(d, d, f)
}

func (s *ManualScheduler) add(d, every time.Duration, f func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTask{s: s, at: s.now + d, every: every, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves virtual time forward by d, running every callback that
// falls due on the way. Callbacks may schedule or stop other tasks.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.compact()
			s.mu.Unlock()
			return
		}

		s.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.stopped = true
		}
		f := next.f
		s.mu.Unlock()

		f()
	}
}

// nextDue returns the earliest live task due at or before target.
// Must be called with s.mu held.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	var next *manualTask
	for _, t := range s.tasks {
		if t.stopped || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

// compact drops stopped tasks. Must be called with s.mu held.
func (s *ManualScheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	s.tasks = live
}

// Now returns the current virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of tasks that have not run to completion or
// been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}
