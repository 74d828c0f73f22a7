//go:build debug

package malloc

var poolblkinit = make([]byte, 1024)

func init() {
	for i := 0; i < len(poolblkinit); i++ {
		poolblkinit[i] = 0xff
	}
}

// fill fresh chunks with 0xff, flushing out callers that assume
// uninitialized memory.
func initblock(mem []byte, off, size int64) {
	block := mem[off : off+size]
	for n := copy(block, poolblkinit); n < len(block); {
		n += copy(block[n:], poolblkinit)
	}
}
