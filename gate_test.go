package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnatoleLucet/reveal/viewport"
)

func TestGate(t *testing.T) {
	t.Run("fires once past the threshold", func(t *testing.T) {
		fired := 0
		vp := viewport.New(10)
		vp.Grow(100)
		box := vp.Place(20, 10)

		g := NewGate(vp, NewRef(box), DefaultThreshold)
		g.OnVisible(func() { fired++ })
		g.Observe()

		vp.ScrollTo(14) // 40%
		assert.Equal(t, 0, fired)

		vp.ScrollTo(15) // 50%
		assert.Equal(t, 1, fired)
		assert.True(t, g.Visible())

		vp.ScrollTo(0)
		vp.ScrollTo(20)
		assert.Equal(t, 1, fired, "later crossings must not fire again")
		assert.False(t, g.Observing())
		assert.Equal(t, 0, vp.Observing())
	})

	t.Run("fires during observe when already visible", func(t *testing.T) {
		fired := 0
		vp := viewport.New(10)
		box := vp.Place(0, 4)

		g := NewGate(vp, NewRef(box), DefaultThreshold)
		g.OnVisible(func() { fired++ })
		g.Observe()
		g.Observe()

		assert.Equal(t, 1, fired)
		assert.Equal(t, 0, vp.Observing())
	})

	t.Run("missing element never fires", func(t *testing.T) {
		fired := false
		vp := viewport.New(10)

		g := NewGate(vp, NewRef(nil), DefaultThreshold)
		g.OnVisible(func() { fired = true })
		g.Observe()

		vp.ScrollTo(5)

		assert.False(t, fired)
		assert.False(t, g.Observing())

		g.Dispose()
		g.Dispose()
	})

	t.Run("nil ref never fires", func(t *testing.T) {
		g := NewGate(viewport.New(10), nil, DefaultThreshold)
		g.Observe()

		assert.False(t, g.Observing())
		g.Dispose()
	})

	t.Run("element mounted after construction", func(t *testing.T) {
		fired := false
		vp := viewport.New(10)
		ref := NewRef(nil)

		g := NewGate(vp, ref, DefaultThreshold)
		g.OnVisible(func() { fired = true })

		ref.Set(vp.Place(0, 2))
		g.Observe()

		assert.True(t, fired)
	})

	t.Run("dispose stops observing", func(t *testing.T) {
		fired := false
		vp := viewport.New(10)
		vp.Grow(100)
		box := vp.Place(50, 4)

		g := NewGate(vp, NewRef(box), DefaultThreshold)
		g.OnVisible(func() { fired = true })
		g.Observe()
		assert.True(t, g.Observing())

		g.Dispose()
		g.Dispose()
		g.Observe()

		vp.ScrollTo(50)

		assert.False(t, fired)
		assert.Equal(t, 0, vp.Observing())
	})

	t.Run("zero threshold fires on any intersection", func(t *testing.T) {
		fired := false
		vp := viewport.New(10)
		vp.Grow(100)
		box := vp.Place(10, 10)

		g := NewGate(vp, NewRef(box), 0)
		g.OnVisible(func() { fired = true })
		g.Observe()
		assert.False(t, fired)

		vp.ScrollTo(1)
		assert.True(t, fired)
	})

	t.Run("threshold above one is clamped", func(t *testing.T) {
		fired := false
		vp := viewport.New(10)
		box := vp.Place(0, 5)

		g := NewGate(vp, NewRef(box), 3)
		g.OnVisible(func() { fired = true })
		g.Observe()

		assert.True(t, fired)
	})
}
