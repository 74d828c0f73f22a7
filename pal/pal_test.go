package pal

import "testing"

import "github.com/stretchr/testify/require"

func TestReserveExact(t *testing.T) {
	for _, size := range []int64{100, OSPageSize, 10000, 4 * OSPageSize} {
		block := Reserve(size, true)
		require.Len(t, block, int(size))
		for i := range block {
			block[i] = 0xab
		}
		require.Equal(t, byte(0xab), block[size-1])
		Unreserve(block)
	}
}

func TestReserveUncommitted(t *testing.T) {
	block := Reserve(8*OSPageSize, false)
	require.Len(t, block, int(8*OSPageSize))
	// first touch commits.
	block[0], block[len(block)-1] = 1, 2
	require.Equal(t, byte(1), block[0])
	require.Equal(t, byte(2), block[len(block)-1])
	Unreserve(block)
}

func TestReserveInvalid(t *testing.T) {
	require.Panics(t, func() { Reserve(0, true) })
	require.Panics(t, func() { Reserve(-1, false) })
}

func TestZeroAligned(t *testing.T) {
	block := Reserve(4*OSPageSize, true)
	for i := range block {
		block[i] = 0xff
	}
	Zero(block, true)
	for i := range block {
		if block[i] != 0 {
			t.Fatalf("byte %v not zeroed", i)
		}
	}
	Unreserve(block)
}

func TestZeroAlignedDetected(t *testing.T) {
	// alignment verified at runtime instead of claimed by the caller.
	block := Reserve(2*OSPageSize, true)
	for i := range block {
		block[i] = 0xff
	}
	Zero(block, false)
	for i := range block {
		if block[i] != 0 {
			t.Fatalf("byte %v not zeroed", i)
		}
	}
	Unreserve(block)
}

func TestZeroMisaligned(t *testing.T) {
	block := Reserve(2*OSPageSize, true)
	for i := range block {
		block[i] = 0xff
	}
	sub := block[3 : 3+1000]
	Zero(sub, false)
	for i := range sub {
		if sub[i] != 0 {
			t.Fatalf("byte %v not zeroed", i)
		}
	}
	// neighbours untouched.
	require.Equal(t, byte(0xff), block[2])
	require.Equal(t, byte(0xff), block[3+1000])
	Unreserve(block)
}

func TestZeroAlignmentClaim(t *testing.T) {
	block := Reserve(2*OSPageSize, true)
	defer Unreserve(block)
	require.Panics(t, func() {
		Zero(block[1:1+OSPageSize], true)
	})
}

func TestZeroEmpty(t *testing.T) {
	Zero(nil, false) // no-op
}
