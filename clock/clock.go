// Package clock abstracts the timers the reveal runtime schedules on, so that
// callers can swap wall-clock time for a manual clock or a single-threaded loop.
package clock

import (
	"sync"
	"time"
)

// Timer is a cancellation handle for a scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing again.
	// It reports whether the timer was still armed.
	Stop() bool
}

// Clock schedules one-shot and repeating callbacks.
type Clock interface {
	Now() time.Time

	// AfterFunc calls fn once, after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Every calls fn every d until the returned timer is stopped.
	Every(d time.Duration, fn func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
// Callbacks run on their own goroutines.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (realClock) Every(d time.Duration, fn func()) Timer {
	t := &ticker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()

	return t
}

type ticker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
		stopped = true
	})

	return stopped
}
