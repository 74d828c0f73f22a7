//go:build linux

package pal

import "unsafe"

import "golang.org/x/sys/unix"

// Linux backend. Same shape as the BSD family base, kept separate
// because the two families drift independently.

const palFeatures = LazyCommit | AlignedAllocation

func osReserve(size int64, committed bool) ([]byte, error) {
	// anonymous private mappings commit on first touch, the
	// committed flavour needs no extra work.
	return unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

func osUnreserve(block []byte) error {
	return unix.Munmap(block)
}

func osRemapZero(block []byte) error {
	_, err := unix.MmapPtr(
		-1, 0,
		unsafe.Pointer(&block[0]), uintptr(len(block)),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_FIXED)
	return err
}
