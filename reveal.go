// Package reveal progressively shows text once it scrolls into view.
//
// A Gate watches an element and fires once when enough of it is visible, a
// Scheduler turns that signal into a count of shown units growing one tick at a
// time, and a Panel wires a family of them with staggered start delays. The
// shown count is a Signal, so effects re-run whenever it grows, and every piece
// is torn down with the Owner it was created under.
package reveal

import "github.com/AnatoleLucet/reveal/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates a read/write signal.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		internal.GetRuntime().NewSignal(initial),
	}
}

// Read the current value of the signal, tracking the dependency if within an effect.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking it.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Value())
}

// Write a new value to the signal, re-running the effects that read it.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// NewBatch batches multiple signal writes into a single update,
// instead of re-running effects after each write.
func NewBatch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// Effect is a reactive computation, re-run whenever a signal it read changes.
type Effect struct {
	effect *internal.Effect
}

// NewEffect creates an effect that runs now and again whenever its dependencies change.
func NewEffect(fn func()) *Effect {
	return &Effect{internal.GetRuntime().NewEffect(internal.EffectUser, fn)}
}

// NewRenderEffect is like NewEffect, but runs ahead of user effects when updates are flushed.
func NewRenderEffect(fn func()) *Effect {
	return &Effect{internal.GetRuntime().NewEffect(internal.EffectRender, fn)}
}

// Dispose stops the effect and runs its cleanups.
func (e *Effect) Dispose() { e.effect.Dispose() }

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function to be called when the current owner is disposed.
// Outside of any owner it does nothing.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new owner, the lifecycle of a view.
// Created within another owner's Run, it is disposed along with it.
func NewOwner() *Owner {
	return &Owner{
		internal.GetRuntime().NewOwner(),
	}
}

// Run a function within the context of this owner.
// Everything created within the function that registers a cleanup
// is torn down when Dispose is called on this owner.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })
	return err
}

// Dispose this owner and all its children. Calling it twice is a no-op.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Disposed reports whether Dispose was called.
func (o *Owner) Disposed() bool { return o.owner.Disposed() }

// Add a cleanup function to be called once when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when a panic occurs within this owner or its children.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }
