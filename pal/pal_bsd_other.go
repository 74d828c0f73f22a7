//go:build dragonfly || freebsd || netbsd || openbsd

package pal

// Non-Darwin members of the BSD family have no overrides, the family
// base is used as is and its flags are re-exported unchanged.

const palFeatures = bsdFeatures

func osReserve(size int64, committed bool) ([]byte, error) {
	return bsdReserve(-1, size, committed)
}

func osUnreserve(block []byte) error {
	return bsdUnreserve(block)
}

func osRemapZero(block []byte) error {
	return bsdRemapZero(-1, block)
}
