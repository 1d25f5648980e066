package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Fake is a manual clock: time only moves when Advance is called, and due
// callbacks run synchronously on the caller's goroutine.
type Fake struct {
	mu sync.Mutex

	now    time.Time
	seq    int
	timers timerHeap
}

// NewFake returns a manual clock set to start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	return f.schedule(d, 0, fn)
}

func (f *Fake) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}

	return f.schedule(d, d, fn)
}

func (f *Fake) schedule(d, period time.Duration, fn func()) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	if d < 0 {
		d = 0
	}

	f.seq++
	t := &fakeTimer{
		clock:  f,
		when:   f.now.Add(d),
		period: period,
		seq:    f.seq,
		fn:     fn,
		index:  -1,
	}
	heap.Push(&f.timers, t)

	return t
}

// Advance moves the clock forward by d, firing every timer due on the way in
// order of due time then creation. Timers scheduled by a callback are fired too
// when they fall due before the end of the advance.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	end := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		if len(f.timers) == 0 || f.timers[0].when.After(end) {
			f.now = end
			f.mu.Unlock()
			return
		}

		t := f.timers[0]
		f.now = t.when
		if t.period > 0 {
			t.when = t.when.Add(t.period)
			f.seq++
			t.seq = f.seq
			heap.Fix(&f.timers, 0)
		} else {
			heap.Pop(&f.timers)
		}
		fn := t.fn
		f.mu.Unlock()

		fn()
	}
}

// Pending returns the number of armed timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.timers)
}

type fakeTimer struct {
	clock *Fake

	when   time.Time
	period time.Duration
	seq    int
	fn     func()

	// position in the heap, -1 once removed
	index int
}

func (t *fakeTimer) Stop() bool {
	f := t.clock
	f.mu.Lock()
	defer f.mu.Unlock()

	if t.index < 0 {
		return false
	}

	heap.Remove(&f.timers, t.index)
	return true
}

type timerHeap []*fakeTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}

	return h[i].when.Before(h[j].when)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*fakeTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]

	return t
}
