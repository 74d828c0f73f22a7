// Package snmalloc implement low-lock memory allocation with
// per-thread handles and the necessary tools and libraries.
//
// api:
//
// Interface specification to access allocators and memory pools.
//
// lib:
//
// Convinience functions that can be used by other packages. Package shall
// not import packages other than golang's standard packages.
//
// malloc:
//
// Custom memory management, a slab arena carved into fixed size
// chunks backed by reserved address ranges.
//
// pal:
//
// Platform abstraction layer, reserve, unreserve and zero address
// ranges with per platform capabilities.
//
// threadalloc:
//
// Attach allocator handles to threads lazily, with a shared
// never-allocating placeholder and pluggable teardown strategies.
package snmalloc
