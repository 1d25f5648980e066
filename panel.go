package reveal

import (
	"log/slog"
	"time"

	"github.com/AnatoleLucet/reveal/clock"
)

// Item is one counter of a panel: a headline label and a detail line under it.
type Item struct {
	Label  string
	Detail string
}

// Part selects the label or the detail of an item.
type Part int

const (
	PartLabel Part = iota
	PartDetail
)

func (p Part) String() string {
	if p == PartDetail {
		return "detail"
	}

	return "label"
}

// PanelConfig describes a panel of counters.
type PanelConfig struct {
	Items []Item

	Clock    clock.Clock
	Observer Observer

	// Element returns the element a part of an item is drawn in, or nil when not mounted.
	Element func(index int, part Part) Element

	// Stagger defaults to DefaultStagger when zero
	Stagger Stagger

	// Threshold defaults to DefaultThreshold when nil
	Threshold  *float64
	TickPeriod time.Duration
	Fade       time.Duration

	Logger *slog.Logger
}

// Cell is one revealed text of a panel.
type Cell struct {
	Index int
	Part  Part
	Text  *Text
}

// Panel reveals a list of items in a cascade: item i starts i stagger steps
// after the first, and its detail waits for its label's units on top of that.
type Panel struct {
	owner *Owner
	cells []Cell
}

// NewPanel builds a text per label and detail of every item.
// The panel belongs to the current owner, if any.
func NewPanel(cfg PanelConfig) *Panel {
	stagger := cfg.Stagger
	if stagger == (Stagger{}) {
		stagger = DefaultStagger
	}

	p := &Panel{owner: NewOwner()}

	p.owner.Run(func() error {
		for i, item := range cfg.Items {
			p.add(cfg, i, PartLabel, item.Label, stagger.Delay(i, 0))
			p.add(cfg, i, PartDetail, item.Detail, stagger.Delay(i, len(Units(item.Label))))
		}

		return nil
	})

	return p
}

func (p *Panel) add(cfg PanelConfig, index int, part Part, text string, delay time.Duration) {
	var el Element
	if cfg.Element != nil {
		el = cfg.Element(index, part)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := NewText(TextConfig{
		Text:       text,
		Clock:      cfg.Clock,
		Observer:   cfg.Observer,
		Ref:        NewRef(el),
		Threshold:  cfg.Threshold,
		Delay:      delay,
		TickPeriod: cfg.TickPeriod,
		Fade:       cfg.Fade,
		Logger:     logger.With("item", index, "part", part.String()),
	})

	p.cells = append(p.cells, Cell{Index: index, Part: part, Text: t})
}

// Cells lists the texts of the panel, label then detail for each item in order.
func (p *Panel) Cells() []Cell {
	return append([]Cell(nil), p.cells...)
}

// Text returns the text of a part of an item, or nil.
func (p *Panel) Text(index int, part Part) *Text {
	for _, c := range p.cells {
		if c.Index == index && c.Part == part {
			return c.Text
		}
	}

	return nil
}

// Revealed returns the number of shown units over the whole panel, tracked when read in an effect.
func (p *Panel) Revealed() int {
	total := 0
	for _, c := range p.cells {
		total += c.Text.Scheduler().Count().Read()
	}

	return total
}

// Total returns the number of units over the whole panel.
func (p *Panel) Total() int {
	total := 0
	for _, c := range p.cells {
		total += c.Text.Scheduler().Len()
	}

	return total
}

// Dispose tears down every text of the panel. Safe to call twice.
func (p *Panel) Dispose() {
	p.owner.Dispose()
}
