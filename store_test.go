package memkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorePushAndOrder(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(1 << 16))
	s := NewStore[int](f)

	require.Equal(t, 0, s.Len())
	for i := 0; i < 100; i++ {
		require.True(t, s.Push(i*10))
	}

	require.Equal(t, 100, s.Len())
	for i := 0; i < 100; i++ {
		require.Equal(t, i*10, *s.At(i), "order and positions survive growth")
	}
	require.Len(t, s.Slice(), 100)
}

func TestStoreGrowthDoubles(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(1 << 16))
	s := NewStore[byte](f)

	require.True(t, s.Push(1))
	require.Equal(t, storeMinCapacity, s.Cap())

	for s.Len() < s.Cap() {
		require.True(t, s.Push(2))
	}
	prev := s.Cap()
	require.True(t, s.Push(3))
	require.Equal(t, 2*prev, s.Cap())
}

func TestStorePop(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(4096))
	s := NewStore[int](f)

	s.Push(1)
	s.Push(2)
	require.Equal(t, 2, s.Pop())
	require.Equal(t, 1, s.Pop())
	require.Equal(t, 0, s.Len())

	require.Panics(t, func() { s.Pop() })
}

func TestStoreReserve(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(1 << 16))
	s := NewStore[uint32](f)

	require.True(t, s.Reserve(100))
	capBefore := s.Cap()
	require.GreaterOrEqual(t, capBefore, 100)

	// Pushing within the reservation never reallocates.
	for i := 0; i < 100; i++ {
		s.Push(uint32(i))
	}
	require.Equal(t, capBefore, s.Cap())

	// Shrinking reservations are no-ops.
	require.True(t, s.Reserve(10))
	require.Equal(t, capBefore, s.Cap())
}

func TestStorePushFailsCleanly(t *testing.T) {
	// A bump arena of 256 bytes holds the 8-element array (88 bytes with
	// bookkeeping) and its 16-element replacement (152 bytes), but not the
	// 32-element one.
	s := NewStore[uint64](NewBumpAllocator(NewBlock(256)))

	pushed := 0
	for s.Push(uint64(pushed)) {
		pushed++
	}
	require.Equal(t, 16, pushed)

	// The failed push left the store fully intact.
	require.Equal(t, 16, s.Len())
	for i := 0; i < 16; i++ {
		require.Equal(t, uint64(i), *s.At(i))
	}
	require.False(t, s.Push(99))
}

func TestStoreClearKeepsCapacity(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(4096))
	s := NewStore[int](f)

	for i := 0; i < 20; i++ {
		s.Push(i)
	}
	capBefore := s.Cap()

	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Equal(t, capBefore, s.Cap())
}

func TestStoreRelease(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(4096))
	s := NewStore[int](f)

	for i := 0; i < 20; i++ {
		s.Push(i)
	}
	s.Release()
	require.Equal(t, 0, s.Len())
	require.Equal(t, 0, s.Cap())
	require.Equal(t, 0, f.UsedMemory())

	// The store is reusable after release.
	require.True(t, s.Push(7))
	require.Equal(t, 7, *s.At(0))
}

func TestStoreSet(t *testing.T) {
	f := NewFreeListAllocator(NewBlock(4096))
	s := NewStore[string](f)

	s.Push("a")
	s.Push("b")
	s.Set(0, "c")
	require.Equal(t, "c", *s.At(0))
	require.Equal(t, "b", *s.At(1))
}
