package malloc

import "sort"
import "unsafe"

import "github.com/1Crazymoney/snmalloc/api"
import s "github.com/bnclabs/gosettings"

// chunkheader bytes prefixed to every chunk, naming the owning pool.
const chunkheader = int64(8)

// Arena defines a large space of memory, divided into pools of
// several slab sizes. Exclusively used by one thread at a time.
type Arena struct {
	slabs   []int64 // sorted list of slab sizes in this arena
	maxslab int64
	mpools  map[int64]api.MemoryPools // slab -> pools
	heap    int64                     // bytes reserved from OS

	// configuration
	capacity  int64  // memory capacity to be managed by this arena
	minblock  int64  // minimum block size allocatable by arena
	maxblock  int64  // maximum block size allocatable by arena
	allocator string // allocator algorithm
}

// NewArena create a new memory arena.
func NewArena(capacity int64, setts s.Settings) *Arena {
	minblock, maxblock := setts.Int64("minblock"), setts.Int64("maxblock")
	arena := &Arena{
		slabs: Blocksizes(minblock, maxblock),
		// configuration
		capacity:  capacity,
		minblock:  minblock,
		maxblock:  maxblock,
		allocator: setts.String("allocator"),
	}
	arena.maxslab = arena.slabs[len(arena.slabs)-1]
	if int64(len(arena.slabs)) > Maxpools {
		panicerr("number of pools in arena exceeds %v", Maxpools)
	} else if capacity > Maxarenasize {
		panicerr("arena cannot exceed %v bytes (%v)", Maxarenasize, capacity)
	}
	arena.mpools = make(map[int64]api.MemoryPools)
	switch arena.allocator {
	case "flist":
		for _, slab := range arena.slabs {
			arena.mpools[slab] = newFlistPools()
		}
	case "fbit":
		for _, slab := range arena.slabs {
			arena.mpools[slab] = newFbitPools()
		}
	default:
		panicerr("unknown allocator %q", arena.allocator)
	}
	return arena
}

//---- operations

// Slabs implement api.Mallocer{} interface.
func (arena *Arena) Slabs() []int64 {
	return arena.slabs
}

// Alloc implement api.Mallocer{} interface.
func (arena *Arena) Alloc(n int64) unsafe.Pointer {
	if arena.mpools == nil {
		panicerr("arena released")
	} else if (n + chunkheader) > arena.maxslab {
		panicerr("Alloc size %v exceeds maxblock size %v", n, arena.maxblock)
	}
	return arena.Allocslab(SuitableSize(arena.slabs, n+chunkheader))
}

// Allocslab implement api.Mallocer{} interface.
func (arena *Arena) Allocslab(slab int64) unsafe.Pointer {
	if arena.mpools == nil {
		panicerr("arena released")
	}
	mpools, ok := arena.mpools[slab]
	if !ok {
		panicerr("no such slab %v", slab)
	}
	ptr, mpool := mpools.Allocchunk(arena, slab)
	// stamp the owning pool in the chunk header.
	*((*unsafe.Pointer)(ptr)) = poolptr(mpool)
	return unsafe.Pointer(uintptr(ptr) + uintptr(chunkheader))
}

// Slabsize implement api.Mallocer{} interface.
func (arena *Arena) Slabsize(ptr unsafe.Pointer) int64 {
	return arena.chunkpool(ptr).Slabsize()
}

// Chunklen implement api.Mallocer{} interface.
func (arena *Arena) Chunklen(ptr unsafe.Pointer) int64 {
	return arena.chunkpool(ptr).Slabsize() - chunkheader
}

// Free implement api.Mallocer{} interface.
func (arena *Arena) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		panicerr("Free(): nil pointer")
	}
	base := unsafe.Pointer(uintptr(ptr) - uintptr(chunkheader))
	arena.chunkpool(ptr).Free(base)
}

// Release implement api.Mallocer{} interface.
func (arena *Arena) Release() {
	for _, mpools := range arena.mpools {
		mpools.Release()
	}
	arena.slabs, arena.mpools, arena.heap = nil, nil, 0
}

//---- statistics and maintenance

// Info implement api.Mallocer{} interface.
func (arena *Arena) Info() (capacity, heap, alloc, overhead int64) {
	capacity = arena.capacity
	self := int64(unsafe.Sizeof(*arena))
	slicesz := int64(cap(arena.slabs)) * int64(unsafe.Sizeof(int64(1)))
	overhead += self + slicesz
	for _, mpools := range arena.mpools {
		_, h, a, o := mpools.Info()
		heap, alloc, overhead = heap+h, alloc+a, overhead+o
	}
	return
}

// Utilization implement api.Mallocer{} interface.
func (arena *Arena) Utilization() ([]int, []float64) {
	var sizes []int
	for _, slab := range arena.slabs {
		sizes = append(sizes, int(slab))
	}
	sort.Ints(sizes)

	ss, zs := make([]int, 0), make([]float64, 0)
	for _, size := range sizes {
		_, heap, alloc, _ := arena.mpools[int64(size)].Info()
		if heap > 0 {
			ss = append(ss, size)
			zs = append(zs, (float64(alloc)/float64(heap))*100)
		}
	}
	return ss, zs
}

//---- local functions

// chunkpool return the pool that owns the chunk, read off the header.
func (arena *Arena) chunkpool(ptr unsafe.Pointer) api.MemoryPool {
	base := unsafe.Pointer(uintptr(ptr) - uintptr(chunkheader))
	switch arena.allocator {
	case "flist":
		return (*poolflist)(*(*unsafe.Pointer)(base))
	case "fbit":
		return (*poolfbit)(*(*unsafe.Pointer)(base))
	}
	panic("unreachable code")
}

func poolptr(mpool api.MemoryPool) unsafe.Pointer {
	switch pool := mpool.(type) {
	case *poolflist:
		return unsafe.Pointer(pool)
	case *poolfbit:
		return unsafe.Pointer(pool)
	}
	panic("unreachable code")
}

// start with a single chunk and double the chunks-per-pool with every
// new pool of a slab, so long lived arenas amortize the reservation
// cost while short lived ones stay small.
func (arena *Arena) adaptiveNumchunks(size, npools int64) int64 {
	maxchunks := arena.capacity / (int64(len(arena.slabs)) * size)
	if maxchunks <= 0 {
		maxchunks = 1
	} else if maxchunks > Maxchunks {
		maxchunks = Maxchunks
	}
	if npools > 62 {
		return maxchunks
	}
	numchunks := int64(1) << uint64(npools)
	if numchunks > maxchunks {
		return maxchunks
	}
	return numchunks
}

func (arena *Arena) chargeheap(n int64) {
	if (arena.heap + n) > arena.capacity {
		panic(ErrorOutofMemory)
	}
	arena.heap += n
}

func (arena *Arena) dischargeheap(n int64) {
	arena.heap -= n
}
