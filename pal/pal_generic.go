//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package pal

// Fallback backend for platforms without an mmap flavoured reservation
// primitive. Regions come from the Go heap, so nothing is lazy and
// alignment follows the runtime's allocator, the empty feature set
// says exactly that.

const palFeatures = Features(0)

func osReserve(size int64, committed bool) ([]byte, error) {
	return make([]byte, size), nil
}

func osUnreserve(block []byte) error {
	return nil
}

func osRemapZero(block []byte) error {
	zerofill(block)
	return nil
}
