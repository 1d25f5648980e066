package reveal

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/reveal/clock"
	"github.com/AnatoleLucet/reveal/viewport"
)

// layout places each item on three rows: label, detail, spacer.
func layout(vp *viewport.Viewport, top int) func(int, Part) Element {
	return func(i int, part Part) Element {
		return vp.Place(top+i*3+int(part), 1)
	}
}

func TestPanel(t *testing.T) {
	items := []Item{
		{Label: "abc", Detail: "x"},
		{Label: "hello", Detail: "yy"},
		{Label: "ok", Detail: "zzz"},
	}

	t.Run("staggers labels and details", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)
		vp.Grow(200)

		p := NewPanel(PanelConfig{
			Items:    items,
			Clock:    clk,
			Observer: vp,
			Element:  layout(vp, 100),
		})
		defer p.Dispose()

		delays := map[string]time.Duration{}
		for _, c := range p.Cells() {
			delays[c.Text.Text()] = c.Text.Scheduler().Delay()
		}

		assert.Equal(t, map[string]time.Duration{
			"abc":   0,
			"x":     150 * time.Millisecond,
			"hello": 200 * time.Millisecond,
			"yy":    450 * time.Millisecond,
			"ok":    400 * time.Millisecond,
			"zzz":   500 * time.Millisecond,
		}, delays)
	})

	t.Run("reveals once scrolled into view", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)
		vp.Grow(200)

		p := NewPanel(PanelConfig{
			Items:    items,
			Clock:    clk,
			Observer: vp,
			Element:  layout(vp, 100),
		})
		defer p.Dispose()

		assert.Equal(t, 16, p.Total())
		clk.Advance(time.Minute)
		assert.Equal(t, 0, p.Revealed())

		vp.ScrollTo(95)
		clk.Advance(time.Minute)

		assert.Equal(t, p.Total(), p.Revealed())
		for _, c := range p.Cells() {
			assert.True(t, c.Text.Scheduler().Completed(), "%s %s", c.Text.Text(), c.Part)
		}
	})

	t.Run("detail follows its label", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)

		p := NewPanel(PanelConfig{
			Items:    items[:1],
			Clock:    clk,
			Observer: vp,
			Element:  layout(vp, 0),
		})
		defer p.Dispose()

		label := p.Text(0, PartLabel).Scheduler()
		detail := p.Text(0, PartDetail).Scheduler()

		assert.Equal(t, 1, label.VisibleCount())
		assert.Equal(t, Pending, detail.State())

		clk.Advance(100 * time.Millisecond)
		assert.True(t, label.Completed())
		assert.Equal(t, 0, detail.VisibleCount())

		clk.Advance(50 * time.Millisecond)
		assert.True(t, detail.Completed())
	})

	t.Run("dispose tears every text down", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)
		vp.Grow(200)

		p := NewPanel(PanelConfig{
			Items:    items,
			Clock:    clk,
			Observer: vp,
			Element:  layout(vp, 100),
		})
		require.Equal(t, 6, vp.Observing())

		p.Dispose()
		p.Dispose()

		assert.Equal(t, 0, vp.Observing())

		vp.ScrollTo(95)
		clk.Advance(time.Minute)
		assert.Equal(t, 0, p.Revealed())
	})

	t.Run("belongs to the current owner", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)

		var p *Panel
		view := NewOwner()
		view.Run(func() error {
			p = NewPanel(PanelConfig{
				Items:    items,
				Clock:    clk,
				Observer: vp,
				Element:  layout(vp, 0),
			})
			return nil
		})
		require.NotZero(t, clk.Pending())

		view.Dispose()

		assert.Equal(t, 0, clk.Pending())
		for _, c := range p.Cells() {
			assert.True(t, c.Text.Scheduler().Disposed())
		}
	})

	t.Run("unmounted parts never reveal", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)

		p := NewPanel(PanelConfig{
			Items:    items,
			Clock:    clk,
			Observer: vp,
			Element: func(i int, part Part) Element {
				if part == PartDetail {
					return nil
				}
				return vp.Place(i, 1)
			},
		})
		defer p.Dispose()

		clk.Advance(time.Minute)

		for _, c := range p.Cells() {
			assert.Equal(t, c.Part == PartLabel, c.Text.Scheduler().Completed())
		}
	})

	t.Run("revealed is reactive", func(t *testing.T) {
		clk := clock.NewFake(epoch)
		vp := viewport.New(20)

		p := NewPanel(PanelConfig{
			Items:    items[:1],
			Clock:    clk,
			Observer: vp,
			Element:  layout(vp, 0),
		})
		defer p.Dispose()

		seen := []int{}
		NewEffect(func() { seen = append(seen, p.Revealed()) })

		clk.Advance(time.Second)

		assert.Equal(t, []int{1, 2, 3, 4}, seen)
	})
}

func TestPanelRealClock(t *testing.T) {
	items := make([]Item, 8)
	for i := range items {
		items[i] = Item{Label: fmt.Sprintf("label %d", i), Detail: fmt.Sprintf("detail %d", i)}
	}

	vp := viewport.New(50)

	p := NewPanel(PanelConfig{
		Items:      items,
		Clock:      clock.Real(),
		Observer:   vp,
		Element:    layout(vp, 0),
		Stagger:    Stagger{PerOwner: time.Millisecond, PerUnit: time.Millisecond},
		TickPeriod: time.Millisecond,
	})
	defer p.Dispose()

	// ticks of every text land on their own timer goroutines
	var revealed atomic.Int64
	e := NewEffect(func() { revealed.Store(int64(p.Revealed())) })
	defer e.Dispose()

	total := int64(p.Total())
	require.Eventually(t, func() bool { return revealed.Load() == total }, 5*time.Second, time.Millisecond)

	for _, c := range p.Cells() {
		assert.True(t, c.Text.Scheduler().Completed())
	}
}

func TestTextGlyphs(t *testing.T) {
	clk := clock.NewFake(epoch)
	vp := viewport.New(5)

	text := NewText(TextConfig{
		Text:     "hey",
		Clock:    clk,
		Observer: vp,
		Ref:      NewRef(vp.Place(0, 1)),
		Fade:     100 * time.Millisecond,
	})
	defer text.Dispose()

	clk.Advance(50 * time.Millisecond)

	glyphs := text.Glyphs(clk.Now())
	assert.Equal(t, []Glyph{
		{Unit: "h", Shown: true, Opacity: 0.5},
		{Unit: "e", Shown: true, Opacity: 0},
		{Unit: "y", Shown: false, Opacity: 0},
	}, glyphs)
}

func TestTextThreshold(t *testing.T) {
	// a ten row box with a single row on screen
	setup := func(threshold *float64) (*Text, *viewport.Viewport) {
		vp := viewport.New(10)
		vp.Grow(100)

		text := NewText(TextConfig{
			Text:      "hey",
			Clock:     clock.NewFake(epoch),
			Observer:  vp,
			Ref:       NewRef(vp.Place(20, 10)),
			Threshold: threshold,
		})

		vp.ScrollTo(11)
		return text, vp
	}

	t.Run("zero fires on any intersection", func(t *testing.T) {
		text, _ := setup(Threshold(0))
		defer text.Dispose()

		assert.True(t, text.Gate().Visible())
		assert.NotEqual(t, Idle, text.Scheduler().State())
	})

	t.Run("nil uses the default", func(t *testing.T) {
		text, vp := setup(nil)
		defer text.Dispose()

		assert.False(t, text.Gate().Visible())
		assert.Equal(t, Idle, text.Scheduler().State())

		vp.ScrollTo(15)
		assert.True(t, text.Gate().Visible())
	})

	t.Run("panel passes it to every text", func(t *testing.T) {
		vp := viewport.New(10)
		vp.Grow(100)

		p := NewPanel(PanelConfig{
			Items:     []Item{{Label: "a", Detail: "b"}},
			Clock:     clock.NewFake(epoch),
			Observer:  vp,
			Element:   func(int, Part) Element { return vp.Place(20, 10) },
			Threshold: Threshold(0),
		})
		defer p.Dispose()

		vp.ScrollTo(11)

		for _, c := range p.Cells() {
			assert.True(t, c.Text.Gate().Visible(), c.Part.String())
		}
	})
}
