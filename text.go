package reveal

import (
	"log/slog"
	"time"

	"github.com/AnatoleLucet/reveal/clock"
)

// TextConfig describes one revealed text.
type TextConfig struct {
	Text string

	Clock    clock.Clock
	Observer Observer

	// Ref holds the element to watch, an empty ref never reveals
	Ref *Ref

	// Threshold defaults to DefaultThreshold when nil, zero fires on any intersection
	Threshold *float64

	Delay      time.Duration
	TickPeriod time.Duration
	Fade       time.Duration

	Logger *slog.Logger
}

// Glyph is a unit as it should be drawn.
type Glyph struct {
	Unit    string
	Shown   bool
	Opacity float64
}

// Text pairs a gate with a scheduler: the text starts revealing the first time
// its element is visible enough.
type Text struct {
	text      string
	gate      *Gate
	scheduler *Scheduler
}

// NewText builds the pair, starts observing, and ties its disposal to the current owner.
func NewText(cfg TextConfig) *Text {
	threshold := DefaultThreshold
	if cfg.Threshold != nil {
		threshold = *cfg.Threshold
	}

	t := &Text{
		text: cfg.Text,
		gate: NewGate(cfg.Observer, cfg.Ref, threshold),
		scheduler: NewScheduler(cfg.Clock, Units(cfg.Text),
			WithDelay(cfg.Delay),
			WithTickPeriod(cfg.TickPeriod),
			WithFade(cfg.Fade),
			WithLogger(cfg.Logger),
		),
	}

	t.gate.OnVisible(t.scheduler.Start)
	OnCleanup(t.Dispose)

	t.gate.Observe()

	return t
}

func (t *Text) Text() string { return t.text }

func (t *Text) Gate() *Gate { return t.gate }

func (t *Text) Scheduler() *Scheduler { return t.scheduler }

// Glyphs returns every unit of the text with its opacity at now.
func (t *Text) Glyphs(now time.Time) []Glyph {
	units := t.scheduler.units
	count := t.scheduler.VisibleCount()

	glyphs := make([]Glyph, len(units))
	for i, u := range units {
		glyphs[i] = Glyph{
			Unit:    u,
			Shown:   i < count,
			Opacity: t.scheduler.Opacity(i, now),
		}
	}

	return glyphs
}

// Dispose stops watching the element and cancels the reveal. Safe to call twice.
func (t *Text) Dispose() {
	t.gate.Dispose()
	t.scheduler.Dispose()
}
