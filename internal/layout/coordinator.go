package layout

import (
	"sync"
	"time"

	"github.com/julien-sobczak/sprout/internal/dom"
)

// Coordinator animates the cards of a scope when a change modifies their positions.
type Coordinator struct {
	Measurer Measurer
	Frames   FrameScheduler
	Animator Animator
	Duration time.Duration

	mu      sync.Mutex
	seq     int
	pending map[int]func()
	closed  bool
}

func NewCoordinator(measurer Measurer, frames FrameScheduler, animator Animator, duration time.Duration) *Coordinator {
	return &Coordinator{
		Measurer: measurer,
		Frames:   frames,
		Animator: animator,
		Duration: duration,
		pending:  make(map[int]func()),
	}
}

// Animate snapshots the positions, applies the mutation, waits one frame for the
// host to lay out the tree, and plays the transitions of the cards that moved.
// The excluded cards are not animated.
func (c *Coordinator) Animate(scope *dom.Node, exclude []string, mutate func()) {
	if c.isClosed() {
		return
	}
	before := Snapshot(scope, c.Measurer)
	mutate()

	c.mu.Lock()
	c.seq++
	id := c.seq
	// Registered before the request in case the frame is delivered synchronously
	c.pending[id] = func() {}
	c.mu.Unlock()

	cancel := c.Frames.RequestFrame(func() {
		c.mu.Lock()
		_, ok := c.pending[id]
		delete(c.pending, id)
		closed := c.closed
		c.mu.Unlock()
		if !ok || closed || !scope.Connected() {
			return
		}
		after := Snapshot(scope, c.Measurer)
		transitions := Reconcile(before, after, Options{
			Duration: c.Duration,
			Exclude:  exclude,
		})
		if len(transitions) == 0 {
			// Nothing moved
			return
		}
		c.Animator.Play(transitions)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[id]; ok {
		c.pending[id] = cancel
	}
}

// PendingFrames returns the number of frames not yet received.
func (c *Coordinator) PendingFrames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Close cancels the pending frames. Later calls to Animate are ignored.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, cancel := range c.pending {
		cancel()
		delete(c.pending, id)
	}
}

func (c *Coordinator) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
