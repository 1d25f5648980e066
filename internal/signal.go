package internal

import (
	"reflect"
	"slices"
	"sync"
)

type Signal struct {
	mu sync.RWMutex

	value any

	// effects that read this signal during their last run
	subs []*Effect
}

func (r *Runtime) NewSignal(initial any) *Signal {
	return &Signal{
		value: initial,
	}
}

func (s *Signal) Read() any {
	if r := lookupRuntime(); r != nil {
		if e := r.tracker.Tracking(); e != nil {
			e.link(s)
		}
	}

	return s.Value()
}

func (s *Signal) Write(v any) {
	s.mu.Lock()
	if isEqual(s.value, v) {
		s.mu.Unlock()
		return
	}

	s.value = v
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	if len(subs) == 0 {
		return
	}

	r := lookupRuntime()
	if r == nil {
		// writer has no runtime of its own (e.g. a timer goroutine), don't keep one around
		r = GetRuntime()
		defer ReleaseRuntime()
	}

	for _, e := range subs {
		r.Enqueue(e)
	}
	r.Schedule()
}

func (s *Signal) Value() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value
}

func (s *Signal) addSub(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.subs, e) {
		s.subs = append(s.subs, e)
	}
}

func (s *Signal) removeSub(e *Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = slices.DeleteFunc(s.subs, func(sub *Effect) bool { return sub == e })
}

func isEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}

	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}

	return a == b
}
