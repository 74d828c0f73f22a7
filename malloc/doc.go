// Package malloc supplies custom memory management for the per-thread
// allocator handles, with a limited scope:
//
//   - Types and Functions exported by this package are not thread
//     safe, every arena is exclusively used by a single thread at a
//     time, concurrency is owned by the handle pool above it.
//   - Work best when memory behaviour is known apriori.
//   - Memory is reserved from the OS through the pal package in large
//     blocks, called pool, where each pool manages several memory
//     chunks of same slab size.
//   - Once a pool block is reserved, it is given back to the OS only
//     when the arena is Released, or when a small idle pool is
//     trimmed on the allocation path.
//   - Memory chunks allocated by this package will always be 64-bit
//     aligned.
//
// Arena is a bucket space of memory, with a maximum capacity, that is
// empty to begin with and starts filling up as and when new
// allocations are requested by application. Applications are allowed
// to allocate memory chunks whose size fall between a pre-configured
// minimum block size and maximum block size.
//
// Every chunk carries an 8-byte header naming the pool that owns it,
// the pointer handed to the application starts right after the
// header.
package malloc
