package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(l *Loop) int {
	n := 0
	for {
		select {
		case fn := <-l.C():
			fn()
			n++
		default:
			return n
		}
	}
}

func TestLoop(t *testing.T) {
	t.Run("delivers callbacks to the consumer", func(t *testing.T) {
		log := []string{}
		base := NewFake(epoch)
		loop := NewLoop(base)

		loop.AfterFunc(10*time.Millisecond, func() { log = append(log, "fired") })
		base.Advance(10 * time.Millisecond)

		assert.Empty(t, log, "callback must wait for the consumer")

		assert.Equal(t, 1, drain(loop))
		assert.Equal(t, []string{"fired"}, log)
	})

	t.Run("drops callbacks stopped while queued", func(t *testing.T) {
		fired := false
		base := NewFake(epoch)
		loop := NewLoop(base)

		timer := loop.Every(10*time.Millisecond, func() { fired = true })
		base.Advance(10 * time.Millisecond)

		timer.Stop()
		drain(loop)

		assert.False(t, fired)
		assert.Equal(t, 0, base.Pending())
	})

	t.Run("run executes until closed", func(t *testing.T) {
		loop := NewLoop(Real())
		done := make(chan struct{})

		loop.AfterFunc(time.Millisecond, func() { close(done) })

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		go func() {
			<-done
			loop.Close()
		}()

		loop.Run(ctx)
		require.NoError(t, ctx.Err())
	})
}
