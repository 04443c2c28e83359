package layout

import (
	"time"

	"github.com/julien-sobczak/sprout/pkg/clock"
)

// FrameScheduler calls a function once the host completed its next layout pass.
type FrameScheduler interface {
	// RequestFrame schedules fn. The returned function cancels the request.
	RequestFrame(fn func()) (cancel func())
}

// ClockFrames emulates animation frames using timers.
type ClockFrames struct {
	Clock clock.Clock
	Delay time.Duration
}

func NewClockFrames(c clock.Clock, delay time.Duration) *ClockFrames {
	return &ClockFrames{
		Clock: c,
		Delay: delay,
	}
}

func (f *ClockFrames) RequestFrame(fn func()) func() {
	timer := f.Clock.AfterFunc(f.Delay, fn)
	return func() {
		timer.Stop()
	}
}

// Animator plays transitions.
type Animator interface {
	Play(transitions []Transition)
}

// AnimatorFunc is an adapter to use ordinary functions as Animator.
type AnimatorFunc func(transitions []Transition)

func (f AnimatorFunc) Play(transitions []Transition) {
	f(transitions)
}
