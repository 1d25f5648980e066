package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport(t *testing.T) {
	t.Run("ratio of a box", func(t *testing.T) {
		v := New(10)
		v.Grow(100)

		inside := v.Place(2, 4)
		below := v.Place(20, 4)
		straddling := v.Place(8, 4)
		empty := v.Place(3, 0)

		assert.Equal(t, 1.0, v.Ratio(inside))
		assert.Equal(t, 0.0, v.Ratio(below))
		assert.Equal(t, 0.5, v.Ratio(straddling))
		assert.Equal(t, 0.0, v.Ratio(empty))
	})

	t.Run("scroll is clamped to the content", func(t *testing.T) {
		v := New(10)
		v.Grow(30)

		v.ScrollTo(100)
		assert.Equal(t, 20, v.Offset())

		v.ScrollBy(-50)
		assert.Equal(t, 0, v.Offset())

		short := New(10)
		short.Grow(4)
		short.ScrollBy(3)
		assert.Equal(t, 0, short.Offset())
	})

	t.Run("observe reports now and on change", func(t *testing.T) {
		ratios := []float64{}
		v := New(10)
		v.Grow(40)
		box := v.Place(15, 10)

		stop := v.Observe(box, func(r float64) { ratios = append(ratios, r) })

		v.ScrollBy(1) // still out of view, no change
		v.ScrollTo(10)
		v.ScrollTo(15)

		stop()
		v.ScrollTo(0)

		assert.Equal(t, []float64{0, 0.5, 1}, ratios)
		assert.Equal(t, 0, v.Observing())
	})

	t.Run("unknown elements are never reported", func(t *testing.T) {
		called := false
		v := New(10)

		var missing *Box
		stop := v.Observe(missing, func(float64) { called = true })
		stop()

		stop = v.Observe("not a box", func(float64) { called = true })
		stop()

		assert.False(t, called)
		assert.Equal(t, 0, v.Observing())
	})

	t.Run("callbacks may stop their own observation", func(t *testing.T) {
		calls := 0
		v := New(5)
		v.Grow(20)
		box := v.Place(10, 2)

		var stop func()
		stop = v.Observe(box, func(r float64) {
			calls++
			if r > 0 {
				stop()
			}
		})

		v.ScrollTo(9)
		v.ScrollTo(0)
		v.ScrollTo(9)

		assert.Equal(t, 2, calls)
	})

	t.Run("scrolled past a threshold", func(t *testing.T) {
		v := New(5)
		v.Grow(20)

		assert.False(t, v.Scrolled(1))
		v.ScrollTo(2)
		assert.True(t, v.Scrolled(1))
	})
}
