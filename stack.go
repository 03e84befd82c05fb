package memkit

import "unsafe"

// stackHeader precedes every stack allocation. payloadSize is the size the
// caller asked for; alignPad is the number of bytes skipped in front of the
// header to keep it pointer-aligned.
type stackHeader struct {
	payloadSize uintptr
	alignPad    uintptr
}

const stackHeaderSize = unsafe.Sizeof(stackHeader{})

// StackAllocator is a bump allocator that additionally supports deallocation,
// valid only in strict reverse-of-allocation (LIFO) order. Each allocation
// pays a small header for that privilege.
type StackAllocator struct {
	memoryBlock
	offset uintptr
}

// NewStackAllocator creates a LIFO arena over block.
func NewStackAllocator(block []byte) *StackAllocator {
	if len(block) == 0 {
		panic("memkit: allocator needs a non-empty memory block")
	}
	return &StackAllocator{memoryBlock: memoryBlock{block: block}}
}

// Allocate returns size bytes preceded by a hidden header, or nil once the
// block cannot fit the request.
func (a *StackAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}

	pad := alignPad(a.offset, ptrSize)
	headerOff := a.offset + pad
	end := headerOff + stackHeaderSize + uintptr(size)
	if end > uintptr(len(a.block)) {
		return nil
	}

	hdr := (*stackHeader)(unsafe.Pointer(&a.block[headerOff]))
	hdr.payloadSize = uintptr(size)
	hdr.alignPad = pad
	a.offset = end

	out := a.block[headerOff+stackHeaderSize : end : end]
	wipe(out, debugSignatureAlloc)
	return out
}

// Deallocate rewinds the arena past b. b must be the most recent live
// allocation and size must match the original request; anything else is a
// contract violation and panics.
func (a *StackAllocator) Deallocate(b []byte, size int) {
	if b == nil {
		return
	}
	a.checkOwned(b)

	payloadOff := uintptr(a.offsetOf(b))
	hdr := (*stackHeader)(unsafe.Pointer(&a.block[payloadOff-stackHeaderSize]))
	if hdr.payloadSize != uintptr(size) {
		panic("memkit: stack free size does not match the allocation")
	}
	if payloadOff+hdr.payloadSize != a.offset {
		panic("memkit: stack free out of LIFO order")
	}

	a.offset = payloadOff - stackHeaderSize - hdr.alignPad
}

// UsedMemory returns the number of block bytes consumed, headers and
// alignment padding included.
func (a *StackAllocator) UsedMemory() int {
	return int(a.offset)
}

var _ Allocator = (*StackAllocator)(nil)
