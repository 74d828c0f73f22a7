//go:build darwin

package pal

// Darwin backend. XNU behaves like a generic BSD platform, this file
// exists to tag anonymous pages and as the place for XNU specific
// overrides later, if required.

// palFeatures re-exports the BSD family flags plus Tagging. Declared
// explicitly so that any behavioural override added to this file also
// revisits the required flags.
const palFeatures = bsdFeatures | Tagging

// Anonymous page tag. Darwin gives an ID to anonymous pages through
// the mmap fd argument, IDs 240 up to 255 are guaranteed free of
// usage, so tools like vmmap can attribute allocator memory.
const anonTag = 241

func makeVMTag(tag int) int {
	return tag << 24
}

func osReserve(size int64, committed bool) ([]byte, error) {
	return bsdReserve(makeVMTag(anonTag), size, committed)
}

func osUnreserve(block []byte) error {
	return bsdUnreserve(block)
}

func osRemapZero(block []byte) error {
	return bsdRemapZero(makeVMTag(anonTag), block)
}
