//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

func lookupRuntime() *Runtime {
	return GetRuntime()
}

// ReleaseRuntime is a no-op, wasm runs a single runtime.
func ReleaseRuntime() {}
