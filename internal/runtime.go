package internal

import (
	"sync"
)

type Runtime struct {
	mu sync.Mutex

	// set while Flush drains the effect queue, so nested writes only enqueue
	flushing bool

	tracker     *Tracker
	batcher     *Batcher
	effectQueue *EffectQueue
}

func NewRuntime() *Runtime {
	return &Runtime{
		tracker:     NewTracker(),
		batcher:     NewBatcher(),
		effectQueue: NewEffectQueue(),
	}
}

// Enqueue marks an effect as needing a re-run on the next flush.
func (r *Runtime) Enqueue(e *Effect) {
	r.mu.Lock()
	r.effectQueue.Enqueue(e)
	r.mu.Unlock()
}

// Schedule flushes the queue now, unless a batch or a running flush will.
func (r *Runtime) Schedule() {
	if r.batcher.hold() {
		return
	}

	r.mu.Lock()
	flushing := r.flushing
	r.mu.Unlock()

	if !flushing {
		r.Flush()
	}
}

func (r *Runtime) Flush() {
	r.mu.Lock()
	if r.flushing {
		r.mu.Unlock()
		return
	}
	r.flushing = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.flushing = false
		r.mu.Unlock()
	}()

	// effects may write signals and schedule more work, drain until settled
	for {
		r.mu.Lock()
		effects := r.effectQueue.Drain()
		r.mu.Unlock()

		if len(effects) == 0 {
			return
		}

		for _, e := range effects {
			e.run(r)
		}
	}
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) CurrentEffect() *Effect {
	return r.tracker.CurrentEffect()
}

func (r *Runtime) OnCleanup(fn func()) {
	owner := r.CurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}
