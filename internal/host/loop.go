package host

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/julien-sobczak/sprout/pkg/clock"
)

// ErrLoopClosed is returned when posting to a stopped loop.
var ErrLoopClosed = errors.New("loop closed")

// Loop runs every task on a single goroutine, like the event loop of a browser.
// It implements clock.Clock so that timers fire on the loop too.
type Loop struct {
	clock clock.Clock

	mu     sync.Mutex
	tasks  []func()
	wakeup chan struct{}
	done   chan struct{}
	closed bool
}

func NewLoop(c clock.Clock) *Loop {
	return &Loop{
		clock:  c,
		wakeup: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Run executes the tasks until the context is canceled or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for {
			task, ok := l.next()
			if !ok {
				break
			}
			task()
		}
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.done:
			return nil
		case <-l.wakeup:
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.tasks) == 0 {
		return nil, false
	}
	task := l.tasks[0]
	l.tasks = l.tasks[1:]
	return task, true
}

// Post enqueues a task. Tasks run in the order they were posted.
func (l *Loop) Post(task func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wakeup <- struct{}{}:
	default:
	}
	return nil
}

// Do runs the task on the loop and waits for its completion.
// Must not be called from the loop itself.
func (l *Loop) Do(task func()) error {
	completed := make(chan struct{})
	if err := l.Post(func() {
		defer close(completed)
		task()
	}); err != nil {
		return err
	}
	select {
	case <-completed:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Close stops the loop. Pending tasks are dropped.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.tasks = nil
	close(l.done)
}

func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// AfterFunc schedules the function on the loop once the duration elapsed.
func (l *Loop) AfterFunc(d time.Duration, f func()) clock.Timer {
	return l.clock.AfterFunc(d, func() {
		// Dropped when the loop is closed
		_ = l.Post(f)
	})
}
