package reveal

import (
	"log/slog"
	"time"

	"github.com/AnatoleLucet/reveal/clock"
)

// CardConfig describes a block that fades in as a whole.
type CardConfig struct {
	Title string

	Clock    clock.Clock
	Observer Observer
	Ref      *Ref

	// Threshold defaults to DefaultThreshold when nil
	Threshold *float64

	Delay time.Duration
	Fade  time.Duration

	Logger *slog.Logger
}

// Card is a gate over a one-unit scheduler: the block shows up Delay after
// it first scrolls into view, then fades in over Fade.
type Card struct {
	title     string
	gate      *Gate
	scheduler *Scheduler
}

// NewCard builds the card, starts observing, and ties its disposal to the current owner.
func NewCard(cfg CardConfig) *Card {
	threshold := DefaultThreshold
	if cfg.Threshold != nil {
		threshold = *cfg.Threshold
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Card{
		title: cfg.Title,
		gate:  NewGate(cfg.Observer, cfg.Ref, threshold),
		scheduler: NewScheduler(cfg.Clock, []string{cfg.Title},
			WithDelay(cfg.Delay),
			WithFade(cfg.Fade),
			WithLogger(logger.With("card", cfg.Title)),
		),
	}

	c.gate.OnVisible(c.scheduler.Start)
	OnCleanup(c.Dispose)

	c.gate.Observe()

	return c
}

func (c *Card) Title() string { return c.title }

func (c *Card) Gate() *Gate { return c.gate }

func (c *Card) Scheduler() *Scheduler { return c.scheduler }

// Shown reports whether the card started fading in, tracked when read in an effect.
func (c *Card) Shown() bool {
	return c.scheduler.Count().Read() > 0
}

// Opacity returns how visible the card is at now, in [0, 1].
func (c *Card) Opacity(now time.Time) float64 {
	return c.scheduler.Opacity(0, now)
}

// Dispose stops watching the element and cancels the fade. Safe to call twice.
func (c *Card) Dispose() {
	c.gate.Dispose()
	c.scheduler.Dispose()
}
