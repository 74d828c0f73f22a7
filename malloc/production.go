//go:build !debug

package malloc

import "github.com/1Crazymoney/snmalloc/pal"

// fresh chunks are zero filled through the PAL, page aligned chunks
// take the remap path for free.
func initblock(mem []byte, off, size int64) {
	pal.Zero(mem[off:off+size], false)
}
