package threadalloc

import "unsafe"

// Slot is a thread's single storage cell, holding either the
// placeholder or a real handle checked out of the pool. One slot per
// thread, mutated only by its owning thread. The zero states a slot
// moves through: placeholder, attached, released-back-to-placeholder,
// and any allocation after a release re-attaches.
type Slot struct {
	alloc *Alloc
	pool  *Pool
}

// NewSlot create the thread's slot, referencing the placeholder until
// the first real allocation.
func NewSlot(pool *Pool) *Slot {
	return &Slot{alloc: placeholder, pool: pool}
}

// Get return the thread's current handle, placeholder or real. Free
// of side effects, callers need nothing beyond one pointer comparison
// with Placeholder() to pick the slow path.
func (slot *Slot) Get() *Alloc {
	return slot.alloc
}

// LazyReplacement is invoked by the allocation engine on its slow
// paths. When `existing` is already a real handle it returns nil and
// the caller keeps using `existing`, otherwise it promotes the slot
// and returns the new handle.
func (slot *Slot) LazyReplacement(existing *Alloc) *Alloc {
	if existing != placeholder {
		return nil
	}
	return slot.lazyReplacementSlow()
}

// promotion, runs at most once per thread barring teardown re-entry.
func (slot *Slot) lazyReplacementSlow() *Alloc {
	// re-read the slot, teardown re-entry may have run in between.
	if al := slot.alloc; al != nil && al != placeholder {
		return al
	}
	al := slot.pool.Acquire()
	if al == placeholder {
		panic("pool issued the placeholder handle")
	}
	slot.alloc = al
	slot.registerCleanup()
	return al
}

// Malloc allocate `n` bytes through the thread's handle, promoting
// the slot on first use.
func (slot *Slot) Malloc(n int64) unsafe.Pointer {
	al := slot.alloc
	if al == nil || al == placeholder {
		al = slot.lazyReplacementSlow()
	}
	return al.Alloc(n)
}

// Mallocslab allocate a chunk of known slab size through the thread's
// handle, promoting the slot on first use.
func (slot *Slot) Mallocslab(slab int64) unsafe.Pointer {
	al := slot.alloc
	if al == nil || al == placeholder {
		al = slot.lazyReplacementSlow()
	}
	return al.Allocslab(slab)
}

// Free return a chunk allocated through this slot's handle.
func (slot *Slot) Free(ptr unsafe.Pointer) {
	al := slot.alloc
	if al == nil || al == placeholder {
		panicerr("free on a thread that never allocated")
	}
	al.Free(ptr)
}

// release return the slot's real handle to the pool and reset the
// slot to the placeholder. Harmless when the slot never attached.
func (slot *Slot) release() {
	if al := slot.alloc; al != nil && al != placeholder {
		slot.pool.Release(al)
		slot.alloc = placeholder
	}
}
