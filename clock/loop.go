package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop wraps a clock so that callbacks are not run where the timer fires but
// handed, one at a time, to a single consumer reading C.
// Everything scheduled through a Loop therefore runs on one goroutine.
type Loop struct {
	base Clock

	ch   chan func()
	done chan struct{}
	once sync.Once
}

// NewLoop returns a loop over base.
func NewLoop(base Clock) *Loop {
	return &Loop{
		base: base,
		ch:   make(chan func(), 64),
		done: make(chan struct{}),
	}
}

func (l *Loop) Now() time.Time { return l.base.Now() }

func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.inner = l.base.AfterFunc(d, func() { l.post(t, fn) })

	return t
}

func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.inner = l.base.Every(d, func() { l.post(t, fn) })

	return t
}

// C delivers the callbacks due to run. The consumer calls each one it receives.
func (l *Loop) C() <-chan func() {
	return l.ch
}

// Run executes callbacks until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case fn := <-l.ch:
			fn()
		}
	}
}

// Close stops delivering callbacks. Timers firing afterwards are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) post(t *loopTimer, fn func()) {
	if t.stopped.Load() {
		return
	}

	wrapped := func() {
		// the timer may have been stopped while the callback sat in the channel
		if t.stopped.Load() {
			return
		}
		fn()
	}

	select {
	case l.ch <- wrapped:
	case <-l.done:
	}
}

type loopTimer struct {
	inner   Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}

	t.inner.Stop()
	return true
}
