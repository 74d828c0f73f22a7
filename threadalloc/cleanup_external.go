//go:build threadalloc_external

package threadalloc

// Externally-managed attachment. The embedding runtime owns thread
// local storage and its teardown entirely, this strategy only types
// the accessor and registers nothing. Use only when the runtime
// integration explicitly declares it owns thread teardown and will
// release handles itself.

// Strategy name of the compiled-in teardown strategy.
const Strategy = "external"

func (slot *Slot) registerCleanup() {}
