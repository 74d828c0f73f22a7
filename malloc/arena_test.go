package malloc

import "testing"
import "unsafe"

import s "github.com/bnclabs/gosettings"

func TestNewArena(t *testing.T) {
	capacity := int64(10 * 1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())
	slabs := marena.Slabs()
	if len(slabs) == 0 {
		t.Errorf("expected few slabs, got none")
	} else if int64(len(slabs)) > Maxpools {
		t.Errorf("%v slabs exceed %v", len(slabs), Maxpools)
	} else if slabs[0] != 64 {
		t.Errorf("expected %v, got %v", 64, slabs[0])
	} else if x := slabs[len(slabs)-1]; x != 1024*1024 {
		t.Errorf("expected %v, got %v", 1024*1024, x)
	}
	for i, slab := range slabs {
		if (slab % Alignment) != 0 {
			t.Errorf("slab %v not multiple of %v", slab, Alignment)
		}
		if i > 0 && slabs[i-1] >= slab {
			t.Errorf("slabs not sorted at %v", i)
		}
	}
	if x, y := len(slabs), len(marena.mpools); x != y {
		t.Errorf("expected %v, got %v", x, y)
	}
	marena.Release()

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		NewArena(Maxarenasize+1, Defaultsettings())
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		setts := Defaultsettings()
		setts["allocator"] = "buddy"
		NewArena(capacity, setts)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		setts := Defaultsettings()
		setts["minblock"] = int64(65) // not multiple of Alignment
		NewArena(capacity, setts)
	}()
}

func TestArenaAlloc(t *testing.T) {
	capacity := int64(10 * 1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())
	slab := SuitableSize(marena.Slabs(), 1000+chunkheader)

	ptrs := make([]unsafe.Pointer, 1024)
	seen := make(map[unsafe.Pointer]bool)
	for i := 0; i < 1024; i++ {
		ptrs[i] = marena.Alloc(1000)
		if ptrs[i] == nil {
			t.Errorf("unexpected allocation failure")
		} else if (uintptr(ptrs[i]) % uintptr(Alignment)) != 0 {
			t.Errorf("pointer %v not %v byte aligned", ptrs[i], Alignment)
		} else if seen[ptrs[i]] {
			t.Errorf("pointer %v handed out twice", ptrs[i])
		}
		seen[ptrs[i]] = true
		if x := marena.Slabsize(ptrs[i]); x != slab {
			t.Errorf("expected %v, got %v", slab, x)
		} else if y := marena.Chunklen(ptrs[i]); y != slab-chunkheader {
			t.Errorf("expected %v, got %v", slab-chunkheader, y)
		}
	}
	if _, heap, alloc, _ := marena.Info(); alloc != 1024*slab {
		t.Errorf("expected %v, got %v", 1024*slab, alloc)
	} else if heap < alloc {
		t.Errorf("heap %v < alloc %v", heap, alloc)
	}
	if slabs, uzs := marena.Utilization(); len(slabs) != 1 {
		t.Errorf("unexpected %v", len(slabs))
	} else if len(uzs) != 1 {
		t.Errorf("unexpected %v", len(uzs))
	} else if uzs[0] <= 0 || uzs[0] > 100 {
		t.Errorf("unexpected %v", uzs[0])
	}

	for _, ptr := range ptrs {
		marena.Free(ptr)
	}
	if _, _, alloc, _ := marena.Info(); alloc != 0 {
		t.Errorf("expected %v, got %v", 0, alloc)
	}

	// panic case
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		marena.Alloc(marena.maxslab + 1)
	}()
	marena.Release()
}

func TestArenaInfo(t *testing.T) {
	capacity := int64(10 * 1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())
	cp, heap, alloc, overhead := marena.Info()
	if cp != capacity {
		t.Errorf("expected %v, got %v", capacity, cp)
	} else if heap != 0 {
		t.Errorf("unexpected heap %v", heap)
	} else if alloc != 0 {
		t.Errorf("unexpected alloc %v", alloc)
	} else if overhead <= 0 {
		t.Errorf("unexpected overhead %v", overhead)
	}
	marena.Release()
}

func TestArenaZeroinit(t *testing.T) {
	capacity := int64(1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())

	ptr := marena.Alloc(200)
	block := chunkbytes(ptr, marena.Chunklen(ptr))
	for i := range block {
		if block[i] != 0 {
			t.Fatalf("fresh chunk byte %v not zero", i)
		}
		block[i] = 0xff
	}
	marena.Free(ptr)

	// recycled chunk comes back zeroed.
	ptr1 := marena.Alloc(200)
	if ptr1 != ptr {
		t.Errorf("expected chunk %v to be recycled, got %v", ptr, ptr1)
	}
	block = chunkbytes(ptr1, marena.Chunklen(ptr1))
	for i := range block {
		if block[i] != 0 {
			t.Fatalf("recycled chunk byte %v not zero", i)
		}
	}
	marena.Release()
}

func TestArenaOutofMemory(t *testing.T) {
	setts := s.Settings{
		"minblock": int64(64), "maxblock": int64(512), "allocator": "flist",
	}
	marena := NewArena(int64(1024), setts)
	marena.Alloc(504) // 1 chunk pools, 512 bytes heap
	marena.Alloc(504) // 1024 bytes heap
	func() {
		defer func() {
			if r := recover(); r != ErrorOutofMemory {
				t.Errorf("expected %v, got %v", ErrorOutofMemory, r)
			}
		}()
		marena.Alloc(504)
	}()
	marena.Release()
}

func TestArenaNumchunks(t *testing.T) {
	capacity := int64(1024 * 1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())
	out := []int64{}
	for npools := int64(0); npools < 8; npools++ {
		out = append(out, marena.adaptiveNumchunks(100, npools))
	}
	for i, x := range out {
		if x < 1 {
			t.Errorf("expected atleast 1 chunk, got %v", x)
		} else if x > Maxchunks {
			t.Errorf("%v exceeds %v", x, Maxchunks)
		} else if i > 0 && x < out[i-1] {
			t.Errorf("chunks shrank from %v to %v", out[i-1], x)
		}
	}
	// huge slabs always start with a single chunk.
	if x := marena.adaptiveNumchunks(80*1000000, 0); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	marena.Release()
}

func TestArenaFbit(t *testing.T) {
	capacity := int64(10 * 1024 * 1024)
	setts := Defaultsettings()
	setts["allocator"] = "fbit"
	marena := NewArena(capacity, setts)
	slab := SuitableSize(marena.Slabs(), 128+chunkheader)

	ptrs := make([]unsafe.Pointer, 100)
	for i := 0; i < 100; i++ {
		ptrs[i] = marena.Alloc(128)
		if ptrs[i] == nil {
			t.Errorf("unexpected allocation failure")
		} else if x := marena.Slabsize(ptrs[i]); x != slab {
			t.Errorf("expected %v, got %v", slab, x)
		}
	}
	if _, _, alloc, _ := marena.Info(); alloc != 100*slab {
		t.Errorf("expected %v, got %v", 100*slab, alloc)
	}
	for _, ptr := range ptrs {
		marena.Free(ptr)
	}
	if _, _, alloc, _ := marena.Info(); alloc != 0 {
		t.Errorf("expected %v, got %v", 0, alloc)
	}
	marena.Release()
}

func TestSuitableSize(t *testing.T) {
	slabs := []int64{64, 96, 128}
	if x := SuitableSize(slabs, 50); x != 64 {
		t.Errorf("expected %v, got %v", 64, x)
	} else if x = SuitableSize(slabs, 64); x != 64 {
		t.Errorf("expected %v, got %v", 64, x)
	} else if x = SuitableSize(slabs, 65); x != 96 {
		t.Errorf("expected %v, got %v", 96, x)
	} else if x = SuitableSize(slabs, 97); x != 128 {
		t.Errorf("expected %v, got %v", 128, x)
	}
}

func TestBlocksizes(t *testing.T) {
	sizes := Blocksizes(64, 1024)
	if sizes[0] != 64 {
		t.Errorf("expected %v, got %v", 64, sizes[0])
	} else if sizes[len(sizes)-1] != 1024 {
		t.Errorf("expected %v, got %v", 1024, sizes[len(sizes)-1])
	}
	for i, size := range sizes {
		if (size % Alignment) != 0 {
			t.Errorf("size %v not multiple of %v", size, Alignment)
		}
		if i > 0 && sizes[i-1] >= size {
			t.Errorf("sizes not sorted at %v", i)
		}
	}
	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Blocksizes(1024, 64)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		Blocksizes(63, 1024)
	}()
}

func chunkbytes(ptr unsafe.Pointer, size int64) []byte {
	return unsafe.Slice((*byte)(ptr), size)
}

func BenchmarkNewarena(b *testing.B) {
	capacity := int64(10 * 1024 * 1024)
	setts := Defaultsettings()
	for i := 0; i < b.N; i++ {
		NewArena(capacity, setts)
	}
}

func BenchmarkArenaAlloc(b *testing.B) {
	capacity := int64(1024 * 1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		marena.Alloc(96)
	}
}

func BenchmarkArenaFree(b *testing.B) {
	capacity := int64(1024 * 1024 * 1024)
	marena := NewArena(capacity, Defaultsettings())
	ptrs := []unsafe.Pointer{}
	for i := 0; i < b.N; i++ {
		ptrs = append(ptrs, marena.Alloc(96))
	}
	b.ResetTimer()
	for _, ptr := range ptrs {
		marena.Free(ptr)
	}
}
