package malloc

import "testing"
import "unsafe"

func TestPoolFlist(t *testing.T) {
	pools := newFlistPools()
	pool := newpoolflist(128, 8, pools)
	if x := pool.Slabsize(); x != 128 {
		t.Errorf("expected %v, got %v", 128, x)
	}

	ptrs := make([]unsafe.Pointer, 0, 8)
	for i := 0; i < 8; i++ {
		ptr, ok := pool.Allocchunk()
		if !ok {
			t.Errorf("unexpected pool exhaustion at %v", i)
		}
		ptrs = append(ptrs, ptr)
	}
	if _, ok := pool.Allocchunk(); ok {
		t.Errorf("expected pool exhaustion")
	}
	if capacity, heap, alloc, _ := pool.Info(); capacity != 8*128 {
		t.Errorf("expected %v, got %v", 8*128, capacity)
	} else if heap != capacity {
		t.Errorf("expected %v, got %v", capacity, heap)
	} else if alloc != capacity {
		t.Errorf("expected %v, got %v", capacity, alloc)
	}

	pool.Free(ptrs[3])
	if ptr, ok := pool.Allocchunk(); !ok {
		t.Errorf("unexpected pool exhaustion")
	} else if ptr != ptrs[3] {
		t.Errorf("expected %v, got %v", ptrs[3], ptr)
	}

	// panic cases
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		pool.Free(nil)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		pool.Free(unsafe.Pointer(uintptr(pool.base) + 1))
	}()
	pool.Release()
}

func TestPoolFbit(t *testing.T) {
	pool := newpoolfbit(128, 8)
	ptrs := make([]unsafe.Pointer, 0, 8)
	for i := 0; i < 8; i++ {
		ptr, ok := pool.Allocchunk()
		if !ok {
			t.Errorf("unexpected pool exhaustion at %v", i)
		}
		ptrs = append(ptrs, ptr)
	}
	if _, ok := pool.Allocchunk(); ok {
		t.Errorf("expected pool exhaustion")
	}
	pool.Free(ptrs[5])
	if ptr, ok := pool.Allocchunk(); !ok {
		t.Errorf("unexpected pool exhaustion")
	} else if ptr != ptrs[5] {
		t.Errorf("expected %v, got %v", ptrs[5], ptr)
	}
	pool.Release()
}
