// Functions and methods are not thread safe.

package malloc

import "unsafe"

import "github.com/1Crazymoney/snmalloc/api"
import "github.com/1Crazymoney/snmalloc/pal"

// poolfbit manages a block of memory reserved through the PAL and
// sliced up into equal sized chunks, free chunks tracked by a
// hierarchical bitmap.
type poolfbit struct {
	// 64-bit aligned stats
	mallocated int64

	capacity int64          // memory managed by this pool
	size     int64          // fixed size chunks in this pool
	mem      []byte         // PAL reservation backing this pool
	base     unsafe.Pointer // pool's base pointer
	fbits    *freebits
}

// size of each chunk in the block and no. of chunks in the block,
// `n` should be a multiple of 8.
func newpoolfbit(size, n int64) *poolfbit {
	capacity := size * n
	mem := pal.Reserve(capacity, true)
	return &poolfbit{
		capacity: capacity,
		size:     size,
		mem:      mem,
		base:     unsafe.Pointer(&mem[0]),
		fbits:    newfreebits(cacheline, n),
	}
}

// Slabsize implement api.MemoryPool{} interface.
func (pool *poolfbit) Slabsize() int64 {
	return pool.size
}

// Less implement api.MemoryPool{} interface.
func (pool *poolfbit) Less(other interface{}) bool {
	oth := other.(*poolfbit)
	return uintptr(pool.base) < uintptr(oth.base)
}

// Allocchunk implement api.MemoryPool{} interface.
func (pool *poolfbit) Allocchunk() (unsafe.Pointer, bool) {
	if pool.base == nil {
		panicerr("pool already released")
	} else if pool.mallocated == pool.capacity {
		return nil, false
	}
	nthchunk, _ := pool.fbits.alloc()
	if nthchunk < 0 {
		return nil, false
	}
	ptr := uintptr(pool.base) + uintptr(nthchunk*pool.size)
	initblock(pool.mem, nthchunk*pool.size, pool.size)
	pool.mallocated += pool.size
	if mask := uintptr(Alignment - 1); (ptr & mask) != 0 {
		panicerr("allocated pointer is not %v byte aligned", Alignment)
	}
	return unsafe.Pointer(ptr), true
}

// Free implement api.MemoryPool{} interface.
func (pool *poolfbit) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		panic("poolfbit.free(): nil pointer")
	}
	diffptr := uint64(uintptr(ptr) - uintptr(pool.base))
	if (diffptr % uint64(pool.size)) != 0 {
		panic("poolfbit.free(): unaligned pointer")
	}
	pool.fbits.free(int64(diffptr / uint64(pool.size)))
	pool.mallocated -= pool.size
}

// Info implement api.MemoryPool{} interface.
func (pool *poolfbit) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*pool))
	bitsz := pool.fbits.sizeof()
	return pool.capacity, pool.capacity, pool.mallocated, self + bitsz
}

// Release implement api.MemoryPool{} interface.
func (pool *poolfbit) Release() {
	pal.Unreserve(pool.mem)
	pool.fbits = nil
	pool.capacity, pool.mem, pool.base = 0, nil, nil
	pool.mallocated = 0
}

// fbitPools maintain a list of poolfbit of same slab size, most
// recently created pool first.
type fbitPools struct {
	pools  []*poolfbit
	npools int64
}

func newFbitPools() *fbitPools {
	return &fbitPools{}
}

// Allocchunk implement api.MemoryPools{} interface.
func (pools *fbitPools) Allocchunk(
	mallocer api.Mallocer, size int64) (unsafe.Pointer, api.MemoryPool) {

	arena := mallocer.(*Arena)
	for _, pool := range pools.pools {
		if ptr, ok := pool.Allocchunk(); ok {
			return ptr, pool
		}
	}
	numchunks := arena.adaptiveNumchunks(size, pools.npools)
	if (numchunks & 0x7) != 0 { // freebits wants multiples of 8
		numchunks = ((numchunks >> 3) + 1) << 3
	}
	arena.chargeheap(size * numchunks)
	pool := newpoolfbit(size, numchunks)
	pools.pools = append([]*poolfbit{pool}, pools.pools...)
	pools.npools++
	ptr, _ := pool.Allocchunk()
	return ptr, pool
}

// Info implement api.MemoryPools{} interface.
func (pools *fbitPools) Info() (capacity, heap, alloc, overhead int64) {
	overhead += int64(unsafe.Sizeof(*pools))
	for _, pool := range pools.pools {
		c, h, a, o := pool.Info()
		capacity, heap, alloc, overhead = capacity+c, heap+h, alloc+a, overhead+o
	}
	return
}

// Release implement api.MemoryPools{} interface.
func (pools *fbitPools) Release() {
	for _, pool := range pools.pools {
		pool.Release()
	}
	pools.pools, pools.npools = nil, 0
}
