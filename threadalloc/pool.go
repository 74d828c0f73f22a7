package threadalloc

import "sync"

import "github.com/1Crazymoney/snmalloc/malloc"
import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/golog"
import humanize "github.com/dustin/go-humanize"

// Pool is a thread safe registry of allocator handles. Acquire hands
// out a handle for exclusive use by one thread, constructing one when
// none is idle, Release reclaims it for reuse. Handle identity
// persists across release and reacquire cycles, the placeholder is
// never pooled.
type Pool struct {
	mu          sync.Mutex
	free        []*Alloc
	created     int64
	outstanding int64

	// configuration
	capacity int64 // arena capacity per handle
	setts    s.Settings
}

// NewPool create a registry issuing handles whose arenas manage up to
// `capacity` bytes each, refer to malloc.Defaultsettings() for
// `setts` parameters.
func NewPool(capacity int64, setts s.Settings) *Pool {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	return &Pool{capacity: capacity, setts: setts}
}

// Acquire return a handle ready for use by exactly one thread,
// recycling a released handle when possible. Never returns the
// placeholder. Safe to call concurrently.
func (pool *Pool) Acquire() *Alloc {
	pool.mu.Lock()
	var al *Alloc
	if n := len(pool.free); n > 0 {
		al = pool.free[n-1]
		pool.free = pool.free[:n-1]
	} else {
		pool.created++
		al = &Alloc{
			arena: malloc.NewArena(pool.capacity, pool.setts),
			pool:  pool,
			id:    pool.created,
		}
		fmsg := "threadalloc: new handle %v with %v arena\n"
		log.Infof(fmsg, al.id, humanize.Bytes(uint64(pool.capacity)))
	}
	al.busy = true
	pool.outstanding++
	pool.mu.Unlock()
	return al
}

// Release return a previously acquired handle for future reuse. Safe
// to call concurrently. Releasing the same handle twice without an
// intervening Acquire is a misuse and panics, pool state is never
// silently corrupted.
func (pool *Pool) Release(al *Alloc) {
	if al == nil {
		panicerr("release of nil handle")
	} else if al == placeholder {
		panicerr("placeholder handle cannot be released")
	}
	pool.mu.Lock()
	if !al.busy {
		pool.mu.Unlock()
		panicerr("handle %v released twice", al.id)
	}
	al.busy = false
	pool.outstanding--
	pool.free = append(pool.free, al)
	pool.mu.Unlock()
}

// Outstanding number of handles currently checked out of the pool.
func (pool *Pool) Outstanding() int64 {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return pool.outstanding
}

// Created total number of handles constructed so far.
func (pool *Pool) Created() int64 {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return pool.created
}

// Close release every idle handle's arena back to the OS. Closing
// the pool while handles are still checked out panics.
func (pool *Pool) Close() {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.outstanding > 0 {
		panicerr("closing pool with %v handles outstanding", pool.outstanding)
	}
	for _, al := range pool.free {
		al.Release()
	}
	log.Debugf("threadalloc: pool closed after %v handles\n", pool.created)
	pool.free = nil
}
