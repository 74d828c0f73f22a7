package api

import "unsafe"

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Slabs allocatable slab of sizes.
	Slabs() (sizes []int64)

	// Alloc allocate a chunk of `n` bytes. Allocated memory is always
	// 64-bit aligned.
	Alloc(n int64) unsafe.Pointer

	// Allocslab allocate a chunk from slab. Use this only if slab size
	// is known to exist with mallocer.
	Allocslab(slab int64) unsafe.Pointer

	// Slabsize return the size of the chunk's slab size.
	Slabsize(ptr unsafe.Pointer) int64

	// Chunklen return the length of the chunk usable by application.
	Chunklen(ptr unsafe.Pointer) int64

	// Free chunk from arena/pool.
	Free(ptr unsafe.Pointer)

	// Release arena, all its pools and resources.
	Release()

	// Info of memory accounting for this arena.
	Info() (capacity, heap, alloc, overhead int64)

	// Utilization map of slab-size and its utilization
	Utilization() ([]int, []float64)
}

// MemoryPool to manage a single block of memory sliced up into equal
// sized chunks.
type MemoryPool interface {
	// Slabsize managed by this pool.
	Slabsize() int64

	// Less ordering between pools.
	Less(pool interface{}) bool

	// Allocchunk allocate a chunk from pool.
	Allocchunk() (ptr unsafe.Pointer, ok bool)

	// Free chunk back to pool.
	Free(ptr unsafe.Pointer)

	// Info return memory accounting for this pool.
	Info() (capacity, heap, alloc, overhead int64)

	// Release this pool and all its resources back to OS.
	Release()
}

// MemoryPools manage a list of MemoryPool of same slab size.
type MemoryPools interface {
	// Allocchunk allocate a chunk from one of the pools, creating a
	// new pool if none of them has a free chunk.
	Allocchunk(mallocer Mallocer, size int64) (unsafe.Pointer, MemoryPool)

	// Info return memory accounting aggregated across pools.
	Info() (capacity, heap, alloc, overhead int64)

	// Release all pools and their resources.
	Release()
}
