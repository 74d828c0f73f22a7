// Package threadalloc attaches an allocator handle to every thread
// through a branch-minimal fast path.
//
// A Slot is the thread's single storage cell, it starts out holding
// the process wide placeholder handle, a fully initialized allocator
// that never owns memory. The allocation engine only ever pays one
// pointer comparison on the hot path: when the comparison says the
// slot still holds the placeholder, LazyReplacement promotes the slot
// by checking a real handle out of the Pool, once per thread under
// normal operation.
//
// Handles are recycled. When the owning thread winds down, the
// compiled-in teardown strategy returns the slot's handle to the Pool
// and resets the slot, an allocation observed after that simply
// promotes the slot again. Three strategies exist, selected at build
// time through the `threadalloc_destructor` and `threadalloc_external`
// tags, with the runtime-hook strategy as the default. Selecting more
// than one strategy fails the build.
//
// Per thread state is never synchronized, a Slot must be used by one
// thread only. The Pool alone is safe for concurrent callers.
package threadalloc
