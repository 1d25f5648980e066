// Package viewport is a scrollable window over rows of content. It reports how
// much of each placed box intersects the window, the way a browser
// intersection observer does.
package viewport

import (
	"slices"
	"sync"
)

// Box is a placed element: a band of rows starting at Top.
type Box struct {
	Top    int
	Height int
}

// Viewport is a window of height rows, scrolled to offset, over content made of boxes.
type Viewport struct {
	mu sync.Mutex

	offset int
	height int

	// bottom of the lowest box, or more if set with Grow
	content int

	nextID       int
	observations map[int]*observation
}

type observation struct {
	box   *Box
	fn    func(ratio float64)
	ratio float64
}

func New(height int) *Viewport {
	return &Viewport{
		height:       max(height, 0),
		observations: make(map[int]*observation),
	}
}

// Place adds a box to the content.
func (v *Viewport) Place(top, height int) *Box {
	b := &Box{Top: top, Height: max(height, 0)}

	v.mu.Lock()
	v.content = max(v.content, b.Top+b.Height)
	v.mu.Unlock()

	v.notify()
	return b
}

// Grow makes sure the content is at least rows tall.
func (v *Viewport) Grow(rows int) {
	v.mu.Lock()
	v.content = max(v.content, rows)
	v.mu.Unlock()
}

func (v *Viewport) ScrollTo(offset int) {
	v.mu.Lock()
	v.offset = v.clamp(offset)
	v.mu.Unlock()

	v.notify()
}

func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	v.offset = v.clamp(v.offset + delta)
	v.mu.Unlock()

	v.notify()
}

func (v *Viewport) Resize(height int) {
	v.mu.Lock()
	v.height = max(height, 0)
	v.offset = v.clamp(v.offset)
	v.mu.Unlock()

	v.notify()
}

func (v *Viewport) Offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.offset
}

func (v *Viewport) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.height
}

func (v *Viewport) ContentHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.content
}

// Scrolled reports whether the window moved more than threshold rows down.
func (v *Viewport) Scrolled(threshold int) bool {
	return v.Offset() > threshold
}

// Ratio returns the fraction of b's rows inside the window.
func (v *Viewport) Ratio(b *Box) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.ratio(b)
}

// Observe calls fn with the intersection ratio of el now, then each time it changes.
// Elements that are not boxes of this viewport are never reported.
func (v *Viewport) Observe(el any, fn func(ratio float64)) (stop func()) {
	b, ok := el.(*Box)
	if !ok || b == nil || fn == nil {
		return func() {}
	}

	v.mu.Lock()
	v.nextID++
	id := v.nextID
	o := &observation{box: b, fn: fn, ratio: v.ratio(b)}
	v.observations[id] = o
	ratio := o.ratio
	v.mu.Unlock()

	fn(ratio)

	return func() {
		v.mu.Lock()
		delete(v.observations, id)
		v.mu.Unlock()
	}
}

// Observing returns the number of live observations.
func (v *Viewport) Observing() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.observations)
}

// notify reports changed ratios, outside the lock so callbacks may stop or scroll.
func (v *Viewport) notify() {
	type change struct {
		fn    func(float64)
		ratio float64
	}

	v.mu.Lock()
	var changes []change
	for _, id := range v.sortedIDs() {
		o := v.observations[id]
		r := v.ratio(o.box)
		if r != o.ratio {
			o.ratio = r
			changes = append(changes, change{o.fn, r})
		}
	}
	v.mu.Unlock()

	for _, c := range changes {
		c.fn(c.ratio)
	}
}

func (v *Viewport) sortedIDs() []int {
	ids := make([]int, 0, len(v.observations))
	for id := range v.observations {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

func (v *Viewport) ratio(b *Box) float64 {
	if b.Height <= 0 {
		return 0
	}

	top := max(b.Top, v.offset)
	bottom := min(b.Top+b.Height, v.offset+v.height)
	if bottom <= top {
		return 0
	}

	return float64(bottom-top) / float64(b.Height)
}

func (v *Viewport) clamp(offset int) int {
	return max(0, min(offset, v.content-v.height))
}
