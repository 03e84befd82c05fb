package memkit

import "encoding/binary"

const (
	// freeHeaderSize is the allocation header preceding every region, live or
	// free. It stores the payload size only: the size of the writable region
	// handed to the caller, never including the header itself.
	freeHeaderSize = 8

	// freeLinkSize is the forward link a free node embeds in its own payload
	// bytes. It exists only inside currently-free memory.
	freeLinkSize = 8

	// freeNil terminates the free list and encodes "no node" links.
	freeNil = -1
)

// FreeListAllocator is a general-purpose malloc/free replacement over one
// backing block.
//
// Allocation walks the free list and takes the first node large enough
// (first-fit). Deallocation inserts the node back in ascending address order,
// merging with a physically adjacent list neighbor on either side. Keeping
// the list address-sorted is what makes coalescing cheap: a freed block only
// ever has to look at its immediate list neighbors.
//
// Fragmentation under adversarial allocation patterns is the accepted failure
// mode; there is no compaction.
type FreeListAllocator struct {
	memoryBlock
	freeHead  int // offset of the lowest-address free node, freeNil when none
	usedBytes int
}

// NewFreeListAllocator creates a free-list allocator over block. The initial
// state is a single free node spanning the whole block.
func NewFreeListAllocator(block []byte) *FreeListAllocator {
	if len(block) < freeHeaderSize+freeLinkSize {
		panic("memkit: memory block too small for a free list node")
	}

	f := &FreeListAllocator{memoryBlock: memoryBlock{block: block}}
	f.setNodeSize(0, len(block)-freeHeaderSize)
	f.setNodeNext(0, freeNil)
	f.freeHead = 0
	return f
}

// Allocate returns size bytes carved from the first sufficiently large free
// node, or nil when no node fits. Requests smaller than a free link are
// rounded up internally so that the region can rejoin the free list later.
func (f *FreeListAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	need := size
	if need < freeLinkSize {
		need = freeLinkSize
	}

	prev := freeNil
	cur := f.freeHead
	for cur != freeNil {
		curSize := f.nodeSize(cur)
		if curSize >= need {
			break
		}
		prev = cur
		cur = f.nodeNext(cur)
	}
	if cur == freeNil {
		return nil
	}

	curSize := f.nodeSize(cur)
	next := f.nodeNext(cur)

	if rem := curSize - need; rem >= freeHeaderSize+freeLinkSize {
		// Split: carve the request off the front, the remainder becomes a
		// smaller free node in the same list position.
		split := cur + freeHeaderSize + need
		f.setNodeSize(split, rem-freeHeaderSize)
		f.setNodeNext(split, next)
		next = split
	} else {
		// The leftover could not hold another node; hand out the whole
		// region so no unusable fragment is produced.
		need = curSize
	}

	if prev == freeNil {
		f.freeHead = next
	} else {
		f.setNodeNext(prev, next)
	}

	f.setNodeSize(cur, need)
	f.usedBytes += freeHeaderSize + need

	payloadOff := cur + freeHeaderSize
	out := f.block[payloadOff : payloadOff+size : payloadOff+need]
	wipe(out, debugSignatureAlloc)
	return out
}

// Deallocate returns b's region to the free list, inserting it in address
// order and merging it with physically adjacent free neighbors. size must
// equal the matching Allocate request.
func (f *FreeListAllocator) Deallocate(b []byte, size int) {
	if b == nil {
		return
	}
	f.checkOwned(b)

	node := f.offsetOf(b) - freeHeaderSize
	nodeSize := f.nodeSize(node)
	if size <= 0 || nodeSize < size {
		panic("memkit: free size does not match the allocation")
	}
	f.usedBytes -= freeHeaderSize + nodeSize

	// Find the insertion point: prev is the last free node below b.
	// prevPrev is remembered so a backward merge can relink without a second
	// walk.
	prevPrev := freeNil
	prev := freeNil
	next := f.freeHead
	for next != freeNil && next < node {
		prevPrev = prev
		prev = next
		next = f.nodeNext(next)
	}

	// Merge forward: the freed node swallows an immediately adjacent
	// successor.
	if next != freeNil && node+freeHeaderSize+nodeSize == next {
		nodeSize += freeHeaderSize + f.nodeSize(next)
		next = f.nodeNext(next)
	}

	// Merge backward: an immediately adjacent predecessor swallows the freed
	// node instead.
	if prev != freeNil && prev+freeHeaderSize+f.nodeSize(prev) == node {
		nodeSize += freeHeaderSize + f.nodeSize(prev)
		node = prev
		prev = prevPrev
	}

	f.setNodeSize(node, nodeSize)
	f.setNodeNext(node, next)
	if prev == freeNil {
		f.freeHead = node
	} else {
		f.setNodeNext(prev, node)
	}
}

// UsedMemory returns the bytes consumed by live allocations, headers
// included.
func (f *FreeListAllocator) UsedMemory() int {
	return f.usedBytes
}

// Node fields live inside the owned block as little-endian u64s at fixed
// offsets, so all bookkeeping is done through offset cursors instead of
// pointers into free memory.

func (f *FreeListAllocator) nodeSize(off int) int {
	return int(binary.LittleEndian.Uint64(f.block[off:]))
}

func (f *FreeListAllocator) setNodeSize(off, size int) {
	binary.LittleEndian.PutUint64(f.block[off:], uint64(size))
}

func (f *FreeListAllocator) nodeNext(off int) int {
	v := binary.LittleEndian.Uint64(f.block[off+freeHeaderSize:])
	if v == ^uint64(0) {
		return freeNil
	}
	return int(v)
}

func (f *FreeListAllocator) setNodeNext(off, next int) {
	if next == freeNil {
		binary.LittleEndian.PutUint64(f.block[off+freeHeaderSize:], ^uint64(0))
		return
	}
	binary.LittleEndian.PutUint64(f.block[off+freeHeaderSize:], uint64(next))
}

var _ Allocator = (*FreeListAllocator)(nil)
