//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package pal

import "unsafe"

import "golang.org/x/sys/unix"

// Generic BSD family backend. OS specific files delegate here,
// supplying the file descriptor to map anonymous pages with, which is
// -1 everywhere except Darwin where it doubles as the VM tag.

// bsdFeatures exported by the BSD family base. Anonymous private
// mappings are backed on first touch and mmap hands out page aligned
// regions.
const bsdFeatures = LazyCommit | AlignedAllocation

func bsdReserve(anonfd int, size int64, committed bool) ([]byte, error) {
	// an anonymous private mapping is reserve-with-lazy-commit on
	// every BSD, the committed flavour needs no extra work.
	return unix.Mmap(
		anonfd, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
}

func bsdUnreserve(block []byte) error {
	return unix.Munmap(block)
}

func bsdRemapZero(anonfd int, block []byte) error {
	_, err := unix.MmapPtr(
		anonfd, 0,
		unsafe.Pointer(&block[0]), uintptr(len(block)),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_FIXED)
	return err
}
