// Package marquee scrolls a row of names endlessly, one cell per step.
package marquee

import (
	"strings"
	"sync"
)

type Marquee struct {
	mu sync.Mutex

	strip  []rune
	offset int
}

// New lays items out on a strip, each followed by gap spaces.
func New(items []string, gap int) *Marquee {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item)
		b.WriteString(strings.Repeat(" ", max(gap, 0)))
	}

	return &Marquee{strip: []rune(b.String())}
}

// Step moves the strip one cell to the left, wrapping around.
func (m *Marquee) Step() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.strip) == 0 {
		return
	}

	m.offset = (m.offset + 1) % len(m.strip)
}

func (m *Marquee) Offset() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.offset
}

// Frame returns width cells of the strip, repeated as often as needed.
func (m *Marquee) Frame(width int) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if width <= 0 {
		return ""
	}
	if len(m.strip) == 0 {
		return strings.Repeat(" ", width)
	}

	out := make([]rune, width)
	for i := range out {
		out[i] = m.strip[(m.offset+i)%len(m.strip)]
	}

	return string(out)
}
