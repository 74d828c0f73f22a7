package pal

import "errors"
import "os"
import "unsafe"

import "github.com/bnclabs/golog"

// ErrorOutofMemory panic value when the OS cannot satisfy a
// reservation. Not recoverable, callers should let it terminate
// the process.
var ErrorOutofMemory = errors.New("pal.outofmemory")

// Features is a compile time bitset describing the optional
// behaviour of an OS backend.
type Features uint64

const (
	// LazyCommit reserved address space is backed by physical
	// pages only on first touch.
	LazyCommit Features = 1 << iota
	// AlignedAllocation reservations are aligned to OSPageSize.
	AlignedAllocation
	// Tagging anonymous regions carry a diagnostic identifier
	// visible to OS tooling.
	Tagging
)

// Has return whether feature `f` is part of the bitset.
func (fs Features) Has(f Features) bool {
	return fs&f == f
}

// OSPageSize page granularity of the running system.
var OSPageSize = int64(os.Getpagesize())

// Supported return the capability bitset of the compiled-in backend.
func Supported() Features {
	return palFeatures
}

// Reserve a contiguous region of exactly `size` usable bytes. If
// `committed` is false the region may be backed only on first touch,
// refer to the LazyCommit feature. Never returns a short region,
// failure to reserve is fatal.
func Reserve(size int64, committed bool) []byte {
	if size <= 0 {
		panic("pal.Reserve(): invalid size")
	}
	block, err := osReserve(size, committed)
	if err != nil {
		log.Fatalf("pal: reserving %v bytes: %v\n", size, err)
		panic(ErrorOutofMemory)
	}
	return block
}

// Unreserve return a region obtained from Reserve back to the OS.
func Unreserve(block []byte) {
	if len(block) == 0 {
		return
	}
	if err := osUnreserve(block); err != nil {
		log.Fatalf("pal: unreserving %v bytes: %v\n", len(block), err)
		panic(err)
	}
}

// Zero fill the block with zeros. With `pageAligned` the caller
// claims the block begins and ends on a page boundary, violating the
// claim panics. Page aligned blocks, claimed or detected, are remapped
// as fresh anonymous memory so the OS zero-fills them, every other
// block is filled explicitly.
func Zero(block []byte, pageAligned bool) {
	if len(block) == 0 {
		return
	}
	if pageAligned && !isAlignedBlock(block) {
		panic("pal.Zero(): block is not page aligned")
	}
	if pageAligned || isAlignedBlock(block) {
		if osRemapZero(block) == nil {
			return
		}
	}
	zerofill(block)
}

func isAlignedBlock(block []byte) bool {
	addr := int64(uintptr(unsafe.Pointer(&block[0])))
	return (addr%OSPageSize) == 0 && (int64(len(block))%OSPageSize) == 0
}

var zeroblk = make([]byte, 1024)

func zerofill(block []byte) {
	for n := copy(block, zeroblk); n < len(block); {
		n += copy(block[n:], zeroblk)
	}
}
