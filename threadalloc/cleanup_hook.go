//go:build !threadalloc_destructor && !threadalloc_external

package threadalloc

// Runtime-hook teardown, the default strategy. The host runtime
// guarantees to call ThreadCleanup exactly once per thread, after
// every other per-thread destructor that might allocate, typically
// from a deferred call in the thread's top frame. That ordering
// guarantee makes this the strongest and simplest strategy.

// Strategy name of the compiled-in teardown strategy.
const Strategy = "hook"

// the hook owns teardown, nothing to register at promotion.
func (slot *Slot) registerCleanup() {}

// ThreadCleanup entry point for the host runtime, called exactly once
// just before the owning thread terminates. Releases the slot's
// handle and empties the slot, a stray allocation afterwards
// re-promotes through the nil check on the slow path.
func (slot *Slot) ThreadCleanup() {
	if al := slot.alloc; al != nil && al != placeholder {
		slot.pool.Release(al)
	}
	slot.alloc = nil
}
