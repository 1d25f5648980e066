package internal

import "sync"

// Batcher holds flushes back while a batch is open.
type Batcher struct {
	mu sync.Mutex

	// nested batches each add one
	depth int

	// schedules that arrived while batching, the outermost batch flushes for them
	deferred int
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.depth > 0
}

func (b *Batcher) enter() {
	b.mu.Lock()
	b.depth++
	b.mu.Unlock()
}

// leave closes a batch and reports whether it was the outermost one with work to flush.
func (b *Batcher) leave() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.depth--
	if b.depth > 0 {
		return false
	}

	pending := b.deferred > 0
	b.deferred = 0
	return pending
}

// hold reports whether a flush has to wait for the open batch, remembering it if so.
func (b *Batcher) hold() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.depth == 0 {
		return false
	}

	b.deferred++
	return true
}

// NewBatch runs fn with flushes held back, then flushes once if anything was written.
func (r *Runtime) NewBatch(fn func()) {
	r.batcher.enter()
	defer func() {
		if r.batcher.leave() {
			r.Flush()
		}
	}()

	fn()
}
