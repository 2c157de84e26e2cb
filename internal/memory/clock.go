package memory

import (
	"fmt"
	"sync"
	"time"
)

// TickInterval is how often a running clock advances.
const TickInterval = time.Second

// Clock counts whole seconds from Start until Stop.
type Clock struct {
	mu      sync.Mutex
	sched   Scheduler
	elapsed int
	running bool
	task    Task
	gen     uint64
	onTick  []func(seconds int)
}

// NewClock creates a stopped clock that ticks through sched.
func NewClock(sched Scheduler) *Clock {
	return &Clock{sched: sched}
}

// OnTick registers fn to be called with the elapsed seconds after every tick.
func (c *Clock) OnTick(fn func(seconds int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTick = append(c.onTick, fn)
}

// Start resets the count to zero and begins ticking.
// Any previous ticker is cancelled first so there is never more than one.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.elapsed = 0
	c.running = true
	gen := c.gen
	c.task = c.sched.Every(TickInterval, func() { c.tick(gen) })
}

// Stop halts the clock, keeping the elapsed value. Safe to call when stopped.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Restart is Stop followed by Start.
func (c *Clock) Restart() {
	c.Stop()
	c.Start()
}

func (c *Clock) stopLocked() {
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
	// Ticks already in flight for the old generation become no-ops.
	c.gen++
	c.running = false
}

func (c *Clock) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.running {
		c.mu.Unlock()
		return
	}
	c.elapsed++
	seconds := c.elapsed
	observers := append([]func(int){}, c.onTick...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(seconds)
	}
}

// Elapsed returns the number of whole seconds counted so far.
func (c *Clock) Elapsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// FormatTime renders seconds as mm:ss.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
