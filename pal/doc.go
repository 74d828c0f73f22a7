// Package pal hides OS specific behaviour for reserving address space
// and zero-filling memory behind a small uniform surface, consumed by
// the slab allocator. Scope is deliberately narrow:
//
//   - One backend is compiled in per OS, picked by build constraints,
//     the way a backend behaves is advertised through a compile time
//     Features bitset.
//   - A backend belonging to an OS family is composed from the family
//     base by explicit delegation, never by runtime dispatch. An
//     override with no behaviour difference re-exports the family's
//     feature flags unchanged, so that future specializations revisit
//     the flags.
//   - Reservation failure is fatal. The allocator has no fallback when
//     the OS runs out of address space, so Reserve logs and panics
//     with ErrorOutofMemory instead of returning an error.
//   - Zero has two paths, a remap of the region as fresh anonymous
//     memory when the block is page aligned, and an explicit fill for
//     everything else. Both leave the block fully zeroed, the remap is
//     only a performance optimization.
package pal
