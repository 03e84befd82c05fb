package memkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackLIFO(t *testing.T) {
	a := NewStackAllocator(NewBlock(256))

	before := a.UsedMemory()
	require.Equal(t, 0, before)

	bufA := a.Allocate(32)
	require.Len(t, bufA, 32)
	afterA := a.UsedMemory()

	bufB := a.Allocate(40)
	require.Len(t, bufB, 40)

	// Reverse order succeeds and rewinds exactly.
	a.Deallocate(bufB, 40)
	require.Equal(t, afterA, a.UsedMemory())
	a.Deallocate(bufA, 32)
	require.Equal(t, before, a.UsedMemory())
}

func TestStackOutOfOrderFreePanics(t *testing.T) {
	a := NewStackAllocator(NewBlock(256))
	bufA := a.Allocate(32)
	a.Allocate(40)

	require.Panics(t, func() { a.Deallocate(bufA, 32) })
}

func TestStackWrongSizePanics(t *testing.T) {
	a := NewStackAllocator(NewBlock(256))
	buf := a.Allocate(32)

	require.Panics(t, func() { a.Deallocate(buf, 16) })
}

func TestStackExhaustion(t *testing.T) {
	a := NewStackAllocator(NewBlock(64))
	require.NotNil(t, a.Allocate(32)) // 16-byte header + 32
	require.Nil(t, a.Allocate(32))    // would need another 48+ bytes
}

func TestStackFreeNil(t *testing.T) {
	a := NewStackAllocator(NewBlock(64))
	a.Deallocate(nil, 0)
}

func TestStackReuseAfterFree(t *testing.T) {
	a := NewStackAllocator(NewBlock(128))

	buf1 := a.Allocate(32)
	a.Deallocate(buf1, 32)

	buf2 := a.Allocate(32)
	require.Equal(t, &buf1[0], &buf2[0], "rewound memory should be reused")
}
