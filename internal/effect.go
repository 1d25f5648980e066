package internal

import (
	"slices"
	"sync"
)

type EffectType int

const (
	EffectRender EffectType = iota
	EffectUser
)

type Effect struct {
	*Owner

	typ EffectType
	fn  func()

	// guards the fields below; writers on other goroutines may flush the same effect
	mu      sync.Mutex
	deps    []*Signal
	queued  bool
	running bool
	rerun   bool
}

func (r *Runtime) NewEffect(typ EffectType, fn func()) *Effect {
	e := &Effect{
		Owner: r.NewOwner(),
		typ:   typ,
		fn:    fn,
	}
	e.OnDispose(e.unlink)

	e.run(r)

	return e
}

// run resets the effect (children and cleanups) and runs it again, re-tracking its reads.
// Only one goroutine runs an effect at a time: a run requested meanwhile is picked
// up by the running one once it returns.
func (e *Effect) run(r *Runtime) {
	e.mu.Lock()
	if e.running {
		e.rerun = true
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	settled := false
	defer func() {
		// a panicking run still releases the effect
		if !settled {
			e.mu.Lock()
			e.running = false
			e.rerun = false
			e.mu.Unlock()
		}
	}()

	for !e.Disposed() {
		e.Reset()
		e.unlink()

		r.tracker.RunWithEffect(e, e.fn)

		e.mu.Lock()
		if !e.rerun {
			e.running = false
			e.mu.Unlock()
			settled = true
			return
		}
		e.rerun = false
		e.mu.Unlock()
	}

	e.mu.Lock()
	e.running = false
	e.rerun = false
	e.mu.Unlock()
	settled = true
}

// markQueued flags the effect as queued and reports whether it was not already.
func (e *Effect) markQueued() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.queued {
		return false
	}

	e.queued = true
	return true
}

func (e *Effect) clearQueued() {
	e.mu.Lock()
	e.queued = false
	e.mu.Unlock()
}

func (e *Effect) link(s *Signal) {
	e.mu.Lock()
	if slices.Contains(e.deps, s) {
		e.mu.Unlock()
		return
	}
	e.deps = append(e.deps, s)
	e.mu.Unlock()

	s.addSub(e)
}

func (e *Effect) unlink() {
	e.mu.Lock()
	deps := e.deps
	e.deps = nil
	e.mu.Unlock()

	for _, s := range deps {
		s.removeSub(e)
	}
}
