//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the runtime of the calling goroutine, creating it on first use.
func GetRuntime() *Runtime {
	if r := lookupRuntime(); r != nil {
		return r
	}

	r := NewRuntime()
	runtimes.Store(getGID(), r)
	return r
}

// lookupRuntime returns the runtime of the calling goroutine or nil.
// Timer goroutines come and go, so writes from them must not leave a runtime behind.
func lookupRuntime() *Runtime {
	if r, ok := runtimes.Load(getGID()); ok {
		return r.(*Runtime)
	}

	return nil
}

// ReleaseRuntime forgets the runtime of the calling goroutine.
func ReleaseRuntime() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
