package malloc

import s "github.com/bnclabs/gosettings"

// Alignment minblock and maxblock should be multiples of Alignment.
const Alignment = int64(8)

// MEMUtilization is the ratio between allocated memory to application
// and useful memory reserved from OS.
const MEMUtilization = float64(0.95)

// Maxarenasize maximum size of a memory arena. Can be used as default
// capacity for NewArena().
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024)

// Maxpools maximum number of pool-sizes allowed in an arena.
const Maxpools = int64(512)

// Maxchunks maximum number of chunks allowed in a pool.
const Maxchunks = int64(65536)

// Defaultsettings for malloc package.
//
// "minblock" (int64, default: 64)
//		Minimum size of a chunk, inclusive of the chunk header.
//
// "maxblock" (int64, default: 1048576)
//		Maximum size of a chunk.
//
// "allocator" (string, default: "flist")
//		Allocator algorithm, can be "flist" or "fbit".
func Defaultsettings() s.Settings {
	return s.Settings{
		"minblock":  int64(64),
		"maxblock":  int64(1024 * 1024),
		"allocator": "flist",
	}
}
