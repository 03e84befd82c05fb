package memkit

import "encoding/binary"

// poolNil terminates the embedded free chain. Free slots store the byte
// offset of the next free slot in their first eight bytes; there is no other
// per-slot metadata anywhere.
const poolNil = ^uint64(0)

// poolLinkSize is the room a free slot needs for its chain link.
const poolLinkSize = 8

// PoolAllocator partitions one block into equal, aligned slots. Allocation
// pops the head of a free chain threaded through the free slots themselves
// and deallocation pushes; both are O(1) with no search.
type PoolAllocator struct {
	memoryBlock
	slotSize int
	stride   int
	freeHead int // byte offset of the first free slot, -1 when exhausted
	inUse    int
}

// NewPoolAllocator creates a pool over block with the given slot size and
// slot alignment. The stride between slots is slotSize rounded up to the
// larger of slotAlignment and the pointer size, and never smaller than the
// embedded chain link.
func NewPoolAllocator(block []byte, slotSize, slotAlignment int) *PoolAllocator {
	if len(block) == 0 {
		panic("memkit: allocator needs a non-empty memory block")
	}
	if slotSize <= 0 {
		panic("memkit: pool slot size must be positive")
	}
	if !isPowerOfTwo(slotAlignment) {
		panic("memkit: pool slot alignment must be a power of two")
	}

	align := slotAlignment
	if align < int(ptrSize) {
		align = int(ptrSize)
	}
	payload := slotSize
	if payload < poolLinkSize {
		payload = poolLinkSize
	}

	p := &PoolAllocator{
		memoryBlock: memoryBlock{block: block},
		slotSize:    slotSize,
		stride:      int(alignUp(uintptr(payload), uintptr(align))),
	}
	p.Reset()
	return p
}

// Capacity returns the number of slots the block holds.
func (p *PoolAllocator) Capacity() int {
	return len(p.block) / p.stride
}

// Allocate pops a free slot. size must equal the configured slot size; a
// mismatch is a contract violation and panics. Returns nil when every slot
// is live.
func (p *PoolAllocator) Allocate(size int) []byte {
	if size != p.slotSize {
		panic("memkit: pool allocation size must equal the configured slot size")
	}
	if p.freeHead < 0 {
		return nil
	}

	off := p.freeHead
	next := binary.LittleEndian.Uint64(p.block[off:])
	if next == poolNil {
		p.freeHead = -1
	} else {
		p.freeHead = int(next)
	}
	p.inUse++

	out := p.block[off : off+p.slotSize : off+p.slotSize]
	wipe(out, debugSignatureAlloc)
	return out
}

// Deallocate pushes b's slot back onto the free chain.
func (p *PoolAllocator) Deallocate(b []byte, size int) {
	if b == nil {
		return
	}
	if size != p.slotSize {
		panic("memkit: pool free size must equal the configured slot size")
	}
	p.checkOwned(b)

	off := p.offsetOf(b)
	if off%p.stride != 0 {
		panic("memkit: pointer is not a pool slot")
	}

	if p.freeHead < 0 {
		binary.LittleEndian.PutUint64(p.block[off:], poolNil)
	} else {
		binary.LittleEndian.PutUint64(p.block[off:], uint64(p.freeHead))
	}
	p.freeHead = off
	p.inUse--
}

// IndexOf returns the ordinal position of b's slot within the pool, for
// callers that want dense external addressing of pool members.
func (p *PoolAllocator) IndexOf(b []byte) int {
	p.checkOwned(b)
	off := p.offsetOf(b)
	if off%p.stride != 0 {
		panic("memkit: pointer is not a pool slot")
	}
	return off / p.stride
}

// FromIndex returns the slot at ordinal position index. The index must have
// come from IndexOf.
func (p *PoolAllocator) FromIndex(index int) []byte {
	if index < 0 || index >= p.Capacity() {
		panic("memkit: pool index out of range")
	}
	off := index * p.stride
	return p.block[off : off+p.slotSize : off+p.slotSize]
}

// UsedMemory returns the bytes consumed by live slots, stride included.
func (p *PoolAllocator) UsedMemory() int {
	return p.inUse * p.stride
}

// Reset threads every slot back into the free chain, invalidating all
// outstanding allocations.
func (p *PoolAllocator) Reset() {
	capacity := p.Capacity()
	for i := 0; i < capacity; i++ {
		off := i * p.stride
		if i == capacity-1 {
			binary.LittleEndian.PutUint64(p.block[off:], poolNil)
		} else {
			binary.LittleEndian.PutUint64(p.block[off:], uint64(off+p.stride))
		}
	}
	if capacity == 0 {
		p.freeHead = -1
	} else {
		p.freeHead = 0
	}
	p.inUse = 0
}

var _ Allocator = (*PoolAllocator)(nil)
