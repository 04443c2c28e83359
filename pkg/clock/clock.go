package clock

import (
	"sort"
	"sync"
	"time"
)

var (
	clockMu        sync.Mutex
	clockSingleton Clock
)

// Clock abstracts time so that timers (debounce windows, animation frames) can be driven from tests.
type Clock interface {
	Now() time.Time
	// AfterFunc waits for the duration to elapse and then calls f.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle returned by AfterFunc.
type Timer interface {
	// Stop prevents the Timer from firing. It returns false if the timer already fired or was stopped.
	Stop() bool
}

type DefaultClock struct{}

func (c DefaultClock) Now() time.Time {
	return time.Now()
}

func (c DefaultClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// TestClock is a manual clock. Timers only fire when the clock is moved forward.
type TestClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*testTimer
}

type testTimer struct {
	clock   *TestClock
	when    time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *testTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewTestClock() *TestClock {
	return NewTestClockAt(time.Now())
}

func NewTestClockAt(date time.Time) *TestClock {
	return &TestClock{
		now: date,
	}
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *TestClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	timer := &testTimer{
		clock: c,
		when:  c.now.Add(d),
		seq:   c.seq,
		f:     f,
	}
	c.timers = append(c.timers, timer)
	return timer
}

// Pending returns the number of timers still waiting to fire.
func (c *TestClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, timer := range c.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

// FastForward moves the clock and fires, in chronological order, every timer that became due.
// Timers registered by the callbacks are fired too when they fall inside the window.
func (c *TestClock) FastForward(d time.Duration) time.Time {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return target
		}
		next.fired = true
		if next.when.After(c.now) {
			c.now = next.when
		}
		c.mu.Unlock()

		// Callbacks run without the lock so that they can register new timers
		next.f()
	}
}

func (c *TestClock) nextDue(target time.Time) *testTimer {
	var due []*testTimer
	var remaining []*testTimer
	for _, timer := range c.timers {
		if timer.stopped || timer.fired {
			continue
		}
		remaining = append(remaining, timer)
		if !timer.when.After(target) {
			due = append(due, timer)
		}
	}
	c.timers = remaining
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].when.Equal(due[j].when) {
			return due[i].seq < due[j].seq
		}
		return due[i].when.Before(due[j].when)
	})
	return due[0]
}

func CurrentClock() Clock {
	clockMu.Lock()
	defer clockMu.Unlock()
	if clockSingleton == nil {
		clockSingleton = DefaultClock{}
	}
	return clockSingleton
}

// Same as time.Now() but makes possible to control time from unit tests.
func Now() time.Time {
	return CurrentClock().Now()
}

func FreezeAt(now time.Time) *TestClock {
	testClock := NewTestClockAt(now)
	clockMu.Lock()
	clockSingleton = testClock
	clockMu.Unlock()
	return testClock
}

func Freeze() *TestClock {
	return FreezeAt(time.Now())
}

func Unfreeze() {
	clockMu.Lock()
	clockSingleton = nil
	clockMu.Unlock()
}
