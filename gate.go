package reveal

import (
	"sync"
)

// DefaultThreshold is the share of an element that must be on screen to count as visible.
const DefaultThreshold = 0.5

// Threshold returns a pointer to v, for the configs where nil means DefaultThreshold.
func Threshold(v float64) *float64 {
	return &v
}

// Element is a UI node an Observer knows how to watch.
type Element = any

// Observer reports how much of an element intersects the viewport.
type Observer interface {
	// Observe calls fn with the intersection ratio of el, in [0, 1], each time it changes.
	// Calling stop ends the observation.
	Observe(el Element, fn func(ratio float64)) (stop func())
}

// Ref holds an element that may not be mounted yet.
type Ref struct {
	mu      sync.Mutex
	current Element
}

// NewRef returns a ref holding el, which may be nil.
func NewRef(el Element) *Ref {
	return &Ref{current: el}
}

func (r *Ref) Set(el Element) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = el
}

func (r *Ref) Current() Element {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current
}

// Gate fires once, the first time its element is visible enough.
type Gate struct {
	mu sync.Mutex

	observer  Observer
	ref       *Ref
	threshold float64

	listeners []func()

	// stops the observation, nil when not observing
	stop func()

	fired    bool
	disposed bool
}

// NewGate creates a gate over the element held by ref.
// A threshold <= 0 fires as soon as any part is visible, one above 1 is clamped to 1.
func NewGate(observer Observer, ref *Ref, threshold float64) *Gate {
	return &Gate{
		observer:  observer,
		ref:       ref,
		threshold: min(threshold, 1),
	}
}

// OnVisible registers fn to run when the gate fires.
func (g *Gate) OnVisible(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.listeners = append(g.listeners, fn)
}

// Observe starts watching the element. Without an element, or once the gate
// fired or was disposed, it does nothing.
func (g *Gate) Observe() {
	g.mu.Lock()
	if g.disposed || g.fired || g.stop != nil || g.observer == nil {
		g.mu.Unlock()
		return
	}

	el := g.ref.Current()
	if el == nil {
		g.mu.Unlock()
		return
	}

	// marks the gate as observing while the observer reports the first ratio
	g.stop = func() {}
	g.mu.Unlock()

	stop := g.observer.Observe(el, g.handle)

	g.mu.Lock()
	if g.fired || g.disposed {
		g.mu.Unlock()
		stop()
		return
	}
	g.stop = stop
	g.mu.Unlock()
}

func (g *Gate) handle(ratio float64) {
	if !g.crossed(ratio) {
		return
	}

	g.mu.Lock()
	if g.fired || g.disposed {
		g.mu.Unlock()
		return
	}

	g.fired = true
	stop := g.stop
	g.stop = nil
	listeners := g.listeners
	g.listeners = nil
	g.mu.Unlock()

	if stop != nil {
		stop()
	}

	for _, fn := range listeners {
		fn()
	}
}

func (g *Gate) crossed(ratio float64) bool {
	if g.threshold <= 0 {
		return ratio > 0
	}

	return ratio >= g.threshold
}

// Visible reports whether the gate fired.
func (g *Gate) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.fired
}

// Observing reports whether the gate currently watches its element.
func (g *Gate) Observing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.stop != nil
}

// Dispose stops watching. It is safe to call more than once, and without Observe.
func (g *Gate) Dispose() {
	g.mu.Lock()
	if g.disposed {
		g.mu.Unlock()
		return
	}

	g.disposed = true
	stop := g.stop
	g.stop = nil
	g.listeners = nil
	g.mu.Unlock()

	if stop != nil {
		stop()
	}
}
