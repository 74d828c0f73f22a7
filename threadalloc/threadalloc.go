package threadalloc

import "fmt"
import "unsafe"

import "github.com/1Crazymoney/snmalloc/api"
import "github.com/1Crazymoney/snmalloc/malloc"

// Alloc is a per-thread allocator handle, owning the machinery to
// service allocation requests for one thread at a time. Handles move
// between exactly one owning thread and the Pool, never two threads.
type Alloc struct {
	arena *malloc.Arena
	pool  *Pool
	id    int64
	busy  bool // guarded by pool.mu
}

// process wide placeholder handle. It is fully initialized, never
// owns memory and is never mutated after init, so every slot can
// share it without synchronization. The slow paths detect it by
// address and swap in a real handle before any allocation proceeds.
var placeholder = &Alloc{}

// Placeholder return the process wide placeholder handle, shared by
// every slot that has not allocated yet.
func Placeholder() *Alloc {
	return placeholder
}

// Slabs implement api.Mallocer{} interface.
func (al *Alloc) Slabs() []int64 {
	if al == placeholder {
		return nil
	}
	return al.arena.Slabs()
}

// Alloc implement api.Mallocer{} interface. Use Slot.Malloc on the
// allocation path, a placeholder handle cannot allocate.
func (al *Alloc) Alloc(n int64) unsafe.Pointer {
	if al == placeholder {
		panicerr("placeholder handle cannot allocate")
	}
	return al.arena.Alloc(n)
}

// Allocslab implement api.Mallocer{} interface.
func (al *Alloc) Allocslab(slab int64) unsafe.Pointer {
	if al == placeholder {
		panicerr("placeholder handle cannot allocate")
	}
	return al.arena.Allocslab(slab)
}

// Slabsize implement api.Mallocer{} interface.
func (al *Alloc) Slabsize(ptr unsafe.Pointer) int64 {
	return al.arena.Slabsize(ptr)
}

// Chunklen implement api.Mallocer{} interface.
func (al *Alloc) Chunklen(ptr unsafe.Pointer) int64 {
	return al.arena.Chunklen(ptr)
}

// Free implement api.Mallocer{} interface.
func (al *Alloc) Free(ptr unsafe.Pointer) {
	if al == placeholder {
		panicerr("placeholder handle cannot free")
	}
	al.arena.Free(ptr)
}

// Release implement api.Mallocer{} interface. Gives the handle's
// arena back to the OS, called by Pool.Close(), never directly.
func (al *Alloc) Release() {
	al.arena.Release()
}

// Info implement api.Mallocer{} interface.
func (al *Alloc) Info() (capacity, heap, alloc, overhead int64) {
	if al == placeholder {
		return 0, 0, 0, 0
	}
	return al.arena.Info()
}

// Utilization implement api.Mallocer{} interface.
func (al *Alloc) Utilization() ([]int, []float64) {
	if al == placeholder {
		return nil, nil
	}
	return al.arena.Utilization()
}

var _ api.Mallocer = &Alloc{}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
