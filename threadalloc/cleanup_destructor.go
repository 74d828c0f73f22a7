//go:build threadalloc_destructor

package threadalloc

import "runtime"

// Local-destructor teardown. Registers a finalizer on the slot itself,
// with no ordering guarantee relative to other per-thread teardown.
// The finalizer must hang off the slot directly, not off a guard
// object referenced back from the slot: a reference cycle through a
// finalized object is never collected and its finalizer never runs.
// The slot stays reachable for as long as the thread uses it, so the
// handle is released only after the thread lets go. Correctness
// preserving, not guaranteed minimal. Depends on nothing beyond the
// runtime's finalizer semantics, so it works everywhere.

// Strategy name of the compiled-in teardown strategy.
const Strategy = "destructor"

func (slot *Slot) registerCleanup() {
	runtime.SetFinalizer(slot, (*Slot).release)
}
